package replay

import (
	"time"

	"github.com/qicun/SnakeGame/internal/grid"
)

// State is a reconstructed game state at some point in a log. It is
// the flattened view playback needs, not a full engine snapshot.
type State struct {
	Body     []grid.Position
	Dir      grid.Direction
	Score    int
	Length   int
	Food     *grid.Position
	FoodType string
	Over     bool
	Reason   string
}

// Head returns the head position, or a zero position for a log with an
// empty body (which validation rejects).
func (s State) Head() grid.Position {
	if len(s.Body) == 0 {
		return grid.Position{}
	}
	return s.Body[0]
}

// Player reconstructs past states from a finalized log.
type Player struct {
	log Log
}

// NewPlayer wraps a log for playback. Callers should Validate first.
func NewPlayer(l Log) *Player {
	return &Player{log: l}
}

// Log returns the underlying log.
func (p *Player) Log() Log {
	return p.log
}

// Duration returns the log's total elapsed time.
func (p *Player) Duration() time.Duration {
	return p.log.Duration()
}

// StateAt folds every action with timestamp <= t, in order, onto the
// initial state. The fold is a pure left-to-right reduction: the same
// prefix always yields the same state, which is what makes playback
// deterministic and seeking cheap to reason about.
func (p *Player) StateAt(t time.Duration) State {
	st := p.initialState()

	for _, a := range p.log.Actions {
		if a.When() > t {
			break
		}
		st = apply(st, a)
	}
	return st
}

func (p *Player) initialState() State {
	body := make([]grid.Position, len(p.log.Initial.Body))
	copy(body, p.log.Initial.Body)
	dir, _ := grid.ParseDirection(p.log.Initial.Dir)
	food := p.log.Initial.Food

	return State{
		Body:     body,
		Dir:      dir,
		Length:   len(body),
		Food:     &food,
		FoodType: p.log.Initial.FoodType,
	}
}

// apply folds one action into the state. Move overwrites the body and
// direction wholesale; EatFood overwrites score and length and clears
// the food; SpawnFood sets the food; GameOver flags the terminal
// state.
func apply(st State, a Action) State {
	switch act := a.(type) {
	case Move:
		if len(act.Body) > 0 {
			body := make([]grid.Position, len(act.Body))
			copy(body, act.Body)
			st.Body = body
		}
		st.Dir = act.Dir
	case EatFood:
		st.Score = act.Score
		st.Length = act.Length
		st.Food = nil
		st.FoodType = ""
	case SpawnFood:
		pos := act.Pos
		st.Food = &pos
		st.FoodType = act.Type
	case GameOver:
		st.Over = true
		st.Reason = act.Reason
		st.Score = act.Score
	}
	return st
}
