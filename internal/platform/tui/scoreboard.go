package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qicun/SnakeGame/internal/game"
	"github.com/qicun/SnakeGame/internal/storage"
)

// Scoreboard layout constants
const (
	maxLeaderboardRows = 100
)

// ScoreboardKeyMap defines the key bindings for the leaderboard
// browser.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("10"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// ScoreboardModel is the Bubble Tea model for the leaderboard browser.
// One tab per game mode.
type ScoreboardModel struct {
	store     *storage.Store
	modes     []game.Mode
	modeIdx   int
	table     table.Model
	keys      ScoreboardKeyMap
	help      help.Model
	width     int
	height    int
	loadError error
	quitting  bool
}

// NewScoreboardModel creates the leaderboard browser.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  game.Modes(),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.buildTable()
	m.reload()
	return m
}

func (m ScoreboardModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 18},
		{Title: "Best Score", Width: 12},
		{Title: "Best Level", Width: 12},
		{Title: "Games", Width: 8},
	}

	height := m.height - 6
	if height < 4 {
		height = 4
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)
	return t
}

// reload fetches the current mode's leaderboard into the table.
func (m *ScoreboardModel) reload() {
	mode := m.modes[m.modeIdx].String()
	entries, err := m.store.Leaderboard(mode, maxLeaderboardRows)
	if err != nil {
		m.loadError = err
		m.table.SetRows(nil)
		return
	}
	m.loadError = nil

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			e.Player,
			fmt.Sprintf("%d", e.BestScore),
			fmt.Sprintf("%d", e.BestLevel),
			fmt.Sprintf("%d", e.Games),
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.modeIdx = (m.modeIdx + 1) % len(m.modes)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.modeIdx = (m.modeIdx + len(m.modes) - 1) % len(m.modes)
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(4, msg.Height-6))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the tabs, table, and help line.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Leaderboard"))
	b.WriteString("\n")

	var tabs []string
	for i, mode := range m.modes {
		style := tabStyle
		if i == m.modeIdx {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(mode.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	if m.loadError != nil {
		b.WriteString(fmt.Sprintf("\n  could not load leaderboard: %v\n", m.loadError))
	} else if len(m.table.Rows()) == 0 {
		b.WriteString("\n  No games recorded for this mode yet.\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RunScoreboard starts the interactive leaderboard browser.
func RunScoreboard(store *storage.Store, width, height int) error {
	model := NewScoreboardModel(store, width, height)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
