package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qicun/SnakeGame/internal/game"
)

// Selection holds the user's choice from the pre-game menu.
type Selection struct {
	Mode       game.Mode
	Difficulty game.Difficulty
}

// MenuModel lets users choose game mode and difficulty before playing.
// Mode first, then difficulty.
type MenuModel struct {
	cursor       int
	inDifficulty bool
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    Selection
	choosing     bool
	quitting     bool
	back         bool
}

// NewMenuModel creates a new mode/difficulty selection model.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inDifficulty {
		return m.handleDifficultyKey(action)
	}
	return m.handleModeKey(action)
}

func (m MenuModel) handleModeKey(action MenuAction) (tea.Model, tea.Cmd) {
	modes := game.Modes()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(modes)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selection.Mode = modes[m.cursor]
		m.inDifficulty = true
		m.cursor = int(game.DifficultyNormal)
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	difficulties := game.Difficulties()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficulties)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selection.Difficulty = difficulties[m.cursor]
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.inDifficulty = false
		m.cursor = int(m.selection.Mode)
	}

	return m, nil
}

// modeDescriptions label each mode in the menu.
var modeDescriptions = map[game.Mode]string{
	game.ModeClassic:       "Classic (walls end the game)",
	game.ModeBorderless:    "Borderless (wrap around edges)",
	game.ModeObstacles:     "Obstacles (random walls on the board)",
	game.ModeTimeChallenge: "Time Challenge (beat the clock)",
}

// View renders the mode/difficulty selection.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inDifficulty {
		return m.viewDifficultySelect()
	}
	return m.viewModeSelect()
}

func (m MenuModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, mode := range game.Modes() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, modeDescriptions[mode]), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m MenuModel) viewDifficultySelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("DIFFICULTY", m.width))
	b.WriteString("\n\n")

	for i, d := range game.Difficulties() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-7s (start length %d)", cursor, d, d.InitialLength())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m MenuModel) Selected() *Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m MenuModel) WantsBack() bool {
	return m.back
}

// RunModeSelector runs the selection menu and returns the selection,
// or nil when the user backed out.
func RunModeSelector(width, height int) (*Selection, error) {
	model := NewMenuModel(width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
