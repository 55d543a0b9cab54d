package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"solex/pkg/models"
	"solex/pkg/query"
	"solex/pkg/validate"
)

// pageStride is the number of lines PgUp/PgDn move.
const pageStride = 10

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case queryResultMsg:
		return m.applyQueryResult(query.Result(msg))

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case spinner.TickMsg:
		if m.screen != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m, tea.Quit
	}
	switch m.screen {
	case screenInput:
		return m.handleInputKey(msg)
	case screenLoading:
		return m.handleLoadingKey(msg)
	case screenTransaction, screenAccount:
		return m.handleDetailKey(msg)
	case screenError:
		return m.handleErrorKey(msg)
	}
	return m, nil
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case key.Matches(msg, m.keymap.NetworkUp):
		m.network = m.network.Next()
		return m, nil
	case key.Matches(msg, m.keymap.NetworkDown):
		m.network = m.network.Prev()
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.kind = validate.Classify(m.input.Value())
	return m, cmd
}

// submit starts a query for valid input; invalid input is a no-op and
// never reaches the network.
func (m model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	kind := validate.Classify(text)
	if kind == models.KindInvalid {
		return m, nil
	}

	req := m.runner.Next(kind, text, m.network)
	m.queryID = req.ID
	m.screen = screenLoading
	m.loadingSince = time.Now()
	return m, tea.Batch(m.spinner.Tick, runQuery(m.runner, req))
}

// runQuery runs the blocking fetch on a worker goroutine; the result
// comes back as a message, so keys stay live while loading.
func runQuery(runner *query.Runner, req query.Request) tea.Cmd {
	return func() tea.Msg {
		return queryResultMsg(runner.Run(context.Background(), req))
	}
}

func (m model) handleLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}
	// Everything else, submits included, is rejected while a query is
	// in flight.
	return m, nil
}

// applyQueryResult moves off the Loading screen. A result whose id does
// not match the live query is stale and is dropped without touching the
// model.
func (m model) applyQueryResult(res query.Result) (tea.Model, tea.Cmd) {
	if m.screen != screenLoading || res.ID != m.queryID {
		return m, nil
	}
	switch {
	case res.Err != nil:
		m.errMsg = res.Err.Error()
		m.tx = nil
		m.account = nil
		m.screen = screenError
	case res.Tx != nil:
		m.tx = res.Tx
		m.account = nil
		m.tabs = newTabState(len(txTabTitles))
		m.screen = screenTransaction
	case res.Account != nil:
		m.account = res.Account
		m.tx = nil
		m.tabs = newTabState(len(accountTabTitles))
		m.screen = screenAccount
	default:
		m.errMsg = "empty result"
		m.screen = screenError
	}
	return m, nil
}

func (m model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Reset):
		return m.reset(), nil
	case key.Matches(msg, m.keymap.TabNext):
		m.tabs.next()
	case key.Matches(msg, m.keymap.TabPrev):
		m.tabs.prev()
	case key.Matches(msg, m.keymap.ScrollUp):
		m.scrollBy(-1)
	case key.Matches(msg, m.keymap.ScrollDown):
		m.scrollBy(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.scrollBy(-pageStride)
	case key.Matches(msg, m.keymap.PageDown):
		m.scrollBy(pageStride)
	case key.Matches(msg, m.keymap.Home):
		m.tabs.scroll[m.tabs.active] = 0
	case key.Matches(msg, m.keymap.Copy):
		return m.copyIdentifier()
	}
	return m, nil
}

func (m model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Reset), key.Matches(msg, m.keymap.Submit):
		return m.reset(), nil
	}
	return m, nil
}

// reset returns to a fresh Input screen. The selected network survives;
// everything else is cleared.
func (m model) reset() model {
	m.screen = screenInput
	m.input.Reset()
	m.input.Focus()
	m.kind = models.KindInvalid
	m.tx = nil
	m.account = nil
	m.tabs = tabState{}
	m.errMsg = ""
	m.statusMessage = ""
	return m
}
