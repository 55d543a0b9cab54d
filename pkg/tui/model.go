package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"solex/pkg/models"
	"solex/pkg/query"
)

// Version is set by Start()
var Version = "dev"

// --- Messages ---

type queryResultMsg query.Result
type clearStatusMsg struct{}

// --- Screens ---

type screen int

const (
	screenInput screen = iota
	screenLoading
	screenTransaction
	screenAccount
	screenError
)

var txTabTitles = []string{"Overview", "Accounts", "Instructions", "Token Transfers", "Logs"}
var accountTabTitles = []string{"Overview", "Token Holdings", "Recent Activity"}

// tabState is the active tab plus one remembered scroll offset per tab,
// so switching away and back restores the position.
type tabState struct {
	active int
	scroll []int
}

func newTabState(count int) tabState {
	return tabState{scroll: make([]int, count)}
}

func (t *tabState) next() {
	t.active = (t.active + 1) % len(t.scroll)
}

func (t *tabState) prev() {
	t.active = (t.active - 1 + len(t.scroll)) % len(t.scroll)
}

// --- Model ---

type model struct {
	screen  screen
	network models.Network
	kind    models.QueryKind

	input   textinput.Model
	spinner spinner.Model
	keymap  keyMap

	runner       *query.Runner
	queryID      uint64
	loadingSince time.Time

	tx      *models.TransactionView
	account *models.AccountView
	tabs    tabState
	errMsg  string

	statusMessage string
	width         int
	height        int
}

func initialModel(runner *query.Runner) model {
	ti := textinput.New()
	ti.Placeholder = "transaction signature or account address"
	ti.Width = 70
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		screen:  screenInput,
		network: models.Mainnet,
		kind:    models.KindInvalid,
		input:   ti,
		spinner: s,
		keymap:  defaultKeyMap(),
		runner:  runner,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}
