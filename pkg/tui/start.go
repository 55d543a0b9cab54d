package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"solex/pkg/query"
)

func Start(runner *query.Runner, version string) {
	Version = version
	p := tea.NewProgram(
		initialModel(runner),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
