package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qicun/SnakeGame/internal/grid"
)

// GameAction is a non-steering control derived from input.
type GameAction int

const (
	GameActionNone GameAction = iota
	GameActionPause
	GameActionRestart
	GameActionQuit
	GameActionBack
)

// KeyMapper translates Bubble Tea key messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapDirection translates a key message to a steering direction.
// Arrow keys and WASD both steer.
func (km *KeyMapper) MapDirection(msg tea.KeyMsg) (grid.Direction, bool) {
	switch msg.String() {
	case "up", "w":
		return grid.Up, true
	case "down", "s":
		return grid.Down, true
	case "left", "a":
		return grid.Left, true
	case "right", "d":
		return grid.Right, true
	}
	return grid.Up, false
}

// MapAction translates a key message to a control action.
func (km *KeyMapper) MapAction(msg tea.KeyMsg) GameAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return GameActionQuit
	case "p":
		return GameActionPause
	case "r":
		return GameActionRestart
	case "b", "esc":
		return GameActionBack
	}
	return GameActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
