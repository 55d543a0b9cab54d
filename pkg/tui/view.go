package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"solex/pkg/models"
	"solex/pkg/utils"
)

func (m model) View() string {
	switch m.screen {
	case screenInput:
		return m.viewInput()
	case screenLoading:
		return m.viewLoading()
	case screenTransaction:
		return m.viewDetail(
			fmt.Sprintf("Transaction %s", utils.TruncateString(m.tx.Signature.String(), 24)),
			txTabTitles,
		)
	case screenAccount:
		return m.viewDetail(
			fmt.Sprintf("Account %s", utils.TruncateString(m.account.Address.String(), 24)),
			accountTabTitles,
		)
	case screenError:
		return m.viewError()
	}
	return ""
}

func (m model) viewInput() string {
	var networks []string
	for n := models.Mainnet; n <= models.Testnet; n++ {
		label := n.Name()
		if n == m.network {
			networks = append(networks, tabActiveStyle.Render(label))
		} else {
			networks = append(networks, tabStyle.Render(label))
		}
	}

	kindLabel := " "
	switch m.kind {
	case models.KindSignature:
		kindLabel = infoStyle.Render("Transaction signature")
	case models.KindAddress:
		kindLabel = infoStyle.Render("Account address")
	default:
		if strings.TrimSpace(m.input.Value()) != "" {
			kindLabel = errStyle.Render("Not a valid signature or address")
		}
	}

	content := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Solana Explorer %s", Version)),
		"",
		"Network: "+lipgloss.JoinHorizontal(lipgloss.Top, networks...),
		"",
		m.input.View(),
		kindLabel,
	))
	footer := subtleStyle.Render("Enter: submit • ↑/↓: network • Esc: quit")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, content, "", footer),
	)
}

func (m model) viewLoading() string {
	elapsed := time.Since(m.loadingSince).Round(time.Second)
	content := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		fmt.Sprintf("%s Fetching from %s...", m.spinner.View(), m.network.Name()),
		"",
		subtleStyle.Render(fmt.Sprintf("elapsed: %s", elapsed)),
	))
	footer := subtleStyle.Render("q: quit")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, content, "", footer),
	)
}

func (m model) viewDetail(title string, tabTitles []string) string {
	var tabs []string
	for i, name := range tabTitles {
		if i == m.tabs.active {
			tabs = append(tabs, tabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	lines := m.tabLines(m.tabs.active)
	offset := 0
	if m.tabs.active < len(m.tabs.scroll) {
		offset = m.tabs.scroll[m.tabs.active]
	}
	window := windowLines(lines, offset, m.viewportHeight())

	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			titleStyle.Render(title),
			subtleStyle.Render("  "+m.network.Name()),
		),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)

	body := strings.Join(window, "\n")
	if len(lines) > len(window) {
		body += "\n" + subtleStyle.Render(fmt.Sprintf("[%d-%d of %d]", offset+1, offset+len(window), len(lines)))
	}

	footer := subtleStyle.Render("Tab: tabs • ↑/↓: scroll • PgUp/PgDn • Home • c: copy • r: new query • q: quit")
	if m.statusMessage != "" {
		footer = infoStyle.Render(m.statusMessage)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		boxStyle.Width(max(m.width-2, 20)).Render(body),
		footer,
	)
}

func (m model) viewError() string {
	content := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		errStyle.Render("Error"),
		"",
		wrapText(m.errMsg, max(m.width-8, 20)),
	))
	footer := subtleStyle.Render("r: new query • q: quit")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, content, "", footer),
	)
}

// windowLines slices out the visible portion of pre-clamped content.
// The bounds check only guards slicing; offsets are clamped upstream.
func windowLines(lines []string, offset, height int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(lines) {
		offset = len(lines)
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end]
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(text) {
		if line > 0 && line+len(word)+1 > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
