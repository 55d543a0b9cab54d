package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copyIdentifier puts the queried signature or address on the system
// clipboard and flashes a status message for a moment.
func (m model) copyIdentifier() (tea.Model, tea.Cmd) {
	var id string
	switch m.screen {
	case screenTransaction:
		if m.tx != nil {
			id = m.tx.Signature.String()
		}
	case screenAccount:
		if m.account != nil {
			id = m.account.Address.String()
		}
	}
	if id == "" {
		return m, nil
	}

	if err := clipboard.WriteAll(id); err != nil {
		m.statusMessage = "Failed to copy to clipboard"
	} else {
		m.statusMessage = "Copied to clipboard!"
	}
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
