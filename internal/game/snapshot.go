package game

import (
	"time"

	"github.com/qicun/SnakeGame/internal/grid"
)

// Snapshot is one complete game state at a tick boundary. It is the
// unit passed between ticks: the engine never mutates a snapshot in
// place, each tick produces a new one owned by the caller. Obstacles
// are fixed at initialization and shared across snapshots unmodified.
type Snapshot struct {
	Width  int
	Height int

	Snake     Snake
	Food      Food
	State     State
	Obstacles map[grid.Position]bool
	Effects   EffectSet

	// StartedAt is the instant the game began; the time-challenge
	// limit counts from it.
	StartedAt time.Time

	// Interval is the post-effect tick cadence the driver should wait
	// before the next tick. It already includes the difficulty speed
	// factor and this tick's effect fold; the level-derived base speed
	// stays in Playing.Speed so effects never compound across ticks.
	Interval time.Duration
}

// Playing returns the playing state and true when the game is live.
func (s Snapshot) Playing() (Playing, bool) {
	p, ok := s.State.(Playing)
	return p, ok
}

// Over returns the terminal state and true when the game has ended.
func (s Snapshot) Over() (GameOver, bool) {
	g, ok := s.State.(GameOver)
	return g, ok
}

// IsPaused reports whether the game is suspended.
func (s Snapshot) IsPaused() bool {
	_, ok := s.State.(Paused)
	return ok
}

// Score returns the current score regardless of state variant.
func (s Snapshot) Score() int {
	switch st := s.State.(type) {
	case Playing:
		return st.Score
	case Paused:
		return st.Prior.Score
	case GameOver:
		return st.FinalScore
	default:
		return 0
	}
}

// Level returns the current level regardless of state variant.
func (s Snapshot) Level() int {
	switch st := s.State.(type) {
	case Playing:
		return st.Level
	case Paused:
		return st.Prior.Level
	case GameOver:
		return st.FinalLevel
	default:
		return 1
	}
}

// occupiedCells collects every cell the snake and obstacles cover,
// used to keep food spawns off them.
func (s Snapshot) occupiedCells() map[grid.Position]bool {
	occ := make(map[grid.Position]bool, s.Snake.Len()+len(s.Obstacles))
	for _, seg := range s.Snake.Body {
		occ[seg] = true
	}
	for p := range s.Obstacles {
		occ[p] = true
	}
	return occ
}
