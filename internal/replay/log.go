package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/qicun/SnakeGame/internal/game"
	"github.com/qicun/SnakeGame/internal/grid"
)

// InitialState captures everything needed to restart the fold: grid
// dimensions, rules, and the opening board layout.
type InitialState struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Mode       string          `json:"mode"`
	Difficulty string          `json:"difficulty"`
	Body       []grid.Position `json:"body"`
	Dir        string          `json:"dir"`
	Food       grid.Position   `json:"food"`
	FoodType   string          `json:"food_type"`
	Obstacles  []grid.Position `json:"obstacles,omitempty"`
}

// InitialFromSnapshot builds the initial state from a freshly
// initialized snapshot and the engine config it came from.
func InitialFromSnapshot(snap game.Snapshot, cfg game.Config) InitialState {
	body := make([]grid.Position, len(snap.Snake.Body))
	copy(body, snap.Snake.Body)

	var obstacles []grid.Position
	for p := range snap.Obstacles {
		obstacles = append(obstacles, p)
	}

	return InitialState{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Mode:       cfg.Mode.String(),
		Difficulty: cfg.Difficulty.String(),
		Body:       body,
		Dir:        snap.Snake.Dir.String(),
		Food:       snap.Food.Pos,
		FoodType:   snap.Food.Type.String(),
		Obstacles:  obstacles,
	}
}

// Log is one recorded game: a version tag, the initial state, and the
// ordered action list. Once finalized it is immutable and outlives the
// game's snapshot for playback and statistics.
type Log struct {
	ID         string       `json:"id"`
	Version    string       `json:"version"`
	RecordedAt time.Time    `json:"recorded_at"`
	Initial    InitialState `json:"initial"`
	Actions    Actions      `json:"actions"`
}

// Duration returns the elapsed time of the last action.
func (l Log) Duration() time.Duration {
	if len(l.Actions) == 0 {
		return 0
	}
	return l.Actions[len(l.Actions)-1].When()
}

// FinalScore returns the score of the closing GameOver action, or the
// highest EatFood score when the game never finished.
func (l Log) FinalScore() int {
	score := 0
	for _, a := range l.Actions {
		switch act := a.(type) {
		case EatFood:
			score = act.Score
		case GameOver:
			score = act.Score
		}
	}
	return score
}

// Encode serializes the log to JSON for persistence.
func (l Log) Encode() ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode log: %w", err)
	}
	return data, nil
}

// Decode parses a persisted log.
func Decode(data []byte) (Log, error) {
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return Log{}, fmt.Errorf("replay: cannot decode log: %w", err)
	}
	return l, nil
}
