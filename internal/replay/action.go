// Package replay records the observable actions of a live game into a
// timestamped log and reconstructs any past game state from it. Logs
// are ordinary values with a JSON form, so the storage layer can
// persist them without knowing their structure.
package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/qicun/SnakeGame/internal/grid"
)

// Version tags the current log format.
const Version = "1"

// Action is the sealed set of log entries. Every action carries its
// elapsed time since game start; the log keeps them in non-decreasing
// order. Payloads are typed per action instead of string maps so the
// fold in Player stays checked at compile time.
type Action interface {
	// When returns the elapsed time since game start.
	When() time.Duration

	name() string
}

// GameStart opens every log at elapsed time zero.
type GameStart struct {
	At time.Duration
}

// Move records one movement tick with the full resulting body, so the
// player can overwrite the snake wholesale.
type Move struct {
	At   time.Duration
	Head grid.Position
	Body []grid.Position
	Dir  grid.Direction
}

// EatFood records a consumed food item and the resulting totals.
type EatFood struct {
	At     time.Duration
	Pos    grid.Position
	Type   string
	Points int
	Score  int
	Length int
}

// SpawnFood records a new food placement.
type SpawnFood struct {
	At   time.Duration
	Pos  grid.Position
	Type string
}

// GameOver closes a finished game's log.
type GameOver struct {
	At     time.Duration
	Reason string
	Score  int
	Level  int
}

func (a GameStart) When() time.Duration { return a.At }
func (a Move) When() time.Duration      { return a.At }
func (a EatFood) When() time.Duration   { return a.At }
func (a SpawnFood) When() time.Duration { return a.At }
func (a GameOver) When() time.Duration  { return a.At }

func (GameStart) name() string { return "game_start" }
func (Move) name() string      { return "move" }
func (EatFood) name() string   { return "eat_food" }
func (SpawnFood) name() string { return "spawn_food" }
func (GameOver) name() string  { return "game_over" }

// envelope is the flat JSON form shared by all action types. The type
// discriminator picks which fields matter; the rest stay empty.
type envelope struct {
	Type   string          `json:"type"`
	At     int64           `json:"at_ms"`
	Head   *grid.Position  `json:"head,omitempty"`
	Body   []grid.Position `json:"body,omitempty"`
	Dir    string          `json:"dir,omitempty"`
	Pos    *grid.Position  `json:"pos,omitempty"`
	Food   string          `json:"food,omitempty"`
	Points int             `json:"points,omitempty"`
	Score  int             `json:"score,omitempty"`
	Length int             `json:"length,omitempty"`
	Reason string          `json:"reason,omitempty"`
	Level  int             `json:"level,omitempty"`
}

func toEnvelope(a Action) envelope {
	env := envelope{Type: a.name(), At: a.When().Milliseconds()}
	switch act := a.(type) {
	case Move:
		head := act.Head
		env.Head = &head
		env.Body = act.Body
		env.Dir = act.Dir.String()
	case EatFood:
		pos := act.Pos
		env.Pos = &pos
		env.Food = act.Type
		env.Points = act.Points
		env.Score = act.Score
		env.Length = act.Length
	case SpawnFood:
		pos := act.Pos
		env.Pos = &pos
		env.Food = act.Type
	case GameOver:
		env.Reason = act.Reason
		env.Score = act.Score
		env.Level = act.Level
	}
	return env
}

func fromEnvelope(env envelope) (Action, error) {
	at := time.Duration(env.At) * time.Millisecond
	switch env.Type {
	case "game_start":
		return GameStart{At: at}, nil
	case "move":
		var head grid.Position
		if env.Head != nil {
			head = *env.Head
		}
		dir, _ := grid.ParseDirection(env.Dir)
		return Move{At: at, Head: head, Body: env.Body, Dir: dir}, nil
	case "eat_food":
		var pos grid.Position
		if env.Pos != nil {
			pos = *env.Pos
		}
		return EatFood{At: at, Pos: pos, Type: env.Food, Points: env.Points, Score: env.Score, Length: env.Length}, nil
	case "spawn_food":
		var pos grid.Position
		if env.Pos != nil {
			pos = *env.Pos
		}
		return SpawnFood{At: at, Pos: pos, Type: env.Food}, nil
	case "game_over":
		return GameOver{At: at, Reason: env.Reason, Score: env.Score, Level: env.Level}, nil
	default:
		return nil, fmt.Errorf("replay: unknown action type %q", env.Type)
	}
}

// Actions is an ordered action list with the envelope JSON form.
type Actions []Action

// MarshalJSON encodes each action through the flat envelope.
func (as Actions) MarshalJSON() ([]byte, error) {
	envs := make([]envelope, len(as))
	for i, a := range as {
		envs[i] = toEnvelope(a)
	}
	return json.Marshal(envs)
}

// UnmarshalJSON decodes envelope records back into typed actions.
func (as *Actions) UnmarshalJSON(data []byte) error {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return fmt.Errorf("replay: cannot decode actions: %w", err)
	}
	out := make(Actions, 0, len(envs))
	for _, env := range envs {
		a, err := fromEnvelope(env)
		if err != nil {
			return err
		}
		out = append(out, a)
	}
	*as = out
	return nil
}
