package replay

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qicun/SnakeGame/internal/game"
	"github.com/qicun/SnakeGame/internal/grid"
)

// Recorder appends actions to a log while a game runs. It is the log's
// sole owner until Finalize seals it; appends after that are dropped.
// It implements game.Observer so the runner can feed it directly.
type Recorder struct {
	mu     sync.Mutex
	log    Log
	start  time.Time
	sealed bool
}

// NewRecorder opens a log for a game that started at the given instant
// with the given initial state. The log opens with a GameStart action
// at elapsed time zero.
func NewRecorder(initial InitialState, start time.Time) *Recorder {
	return &Recorder{
		log: Log{
			ID:         uuid.NewString(),
			Version:    Version,
			RecordedAt: start,
			Initial:    initial,
			Actions:    Actions{GameStart{At: 0}},
		},
		start: start,
	}
}

// ID returns the log's identifier.
func (r *Recorder) ID() string {
	return r.log.ID
}

// Observe converts a tick's events into log actions. Timestamps are
// elapsed time since game start and therefore non-decreasing.
func (r *Recorder) Observe(now time.Time, snap game.Snapshot, events []game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return
	}

	elapsed := now.Sub(r.start)
	if elapsed < 0 {
		elapsed = 0
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case game.Moved:
			body := make([]grid.Position, len(snap.Snake.Body))
			copy(body, snap.Snake.Body)
			r.log.Actions = append(r.log.Actions, Move{At: elapsed, Head: e.Head, Body: body, Dir: e.Dir})
		case game.FoodEaten:
			r.log.Actions = append(r.log.Actions, EatFood{
				At: elapsed, Pos: e.Pos, Type: e.Type.String(),
				Points: e.Points, Score: e.Score, Length: e.Length,
			})
		case game.FoodSpawned:
			r.log.Actions = append(r.log.Actions, SpawnFood{At: elapsed, Pos: e.Pos, Type: e.Type.String()})
		case game.Ended:
			r.log.Actions = append(r.log.Actions, GameOver{
				At: elapsed, Reason: e.Reason.String(), Score: e.Score, Level: e.Level,
			})
		}
	}
}

// Finalize seals the log and returns it. Further Observe calls are
// no-ops; repeated Finalize calls return the same log.
func (r *Recorder) Finalize() Log {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
	return r.log
}
