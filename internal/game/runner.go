package game

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/qicun/SnakeGame/internal/grid"
)

// idlePoll is how often a parked loop (paused or game over) rechecks
// state instead of busy-spinning.
const idlePoll = 100 * time.Millisecond

// Observer receives each tick's resulting snapshot and events. The
// replay recorder implements this to build its action log.
type Observer interface {
	Observe(now time.Time, snap Snapshot, events []Event)
}

// Runner owns the cooperative tick loop for one game. It is the single
// writer of the snapshot; direction changes land in a single pending
// slot, last writer wins, consumed once per tick. Observers get the
// latest snapshot over a latest-wins channel, so a slow reader only
// ever misses intermediate frames, never the newest one.
type Runner struct {
	engine   *Engine
	logger   *log.Logger
	observer Observer

	mu      sync.Mutex
	snap    Snapshot
	pending *grid.Direction
	cancel  context.CancelFunc
	done    chan struct{}

	updates chan Snapshot
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger attaches a structured logger for lifecycle events.
func WithLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithObserver attaches a tick observer, typically a replay recorder.
func WithObserver(obs Observer) RunnerOption {
	return func(r *Runner) { r.observer = obs }
}

// NewRunner creates a runner around an engine. Start must be called
// before the game advances.
func NewRunner(engine *Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:  engine,
		updates: make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start initializes a fresh snapshot and launches the tick loop.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

func (r *Runner) startLocked() {
	now := time.Now()
	r.snap = r.engine.Initialize(now)
	r.pending = nil

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	if r.logger != nil {
		r.logger.Info("game started",
			"mode", r.engine.Config().Mode.String(),
			"difficulty", r.engine.Config().Difficulty.String(),
			"grid", r.engine.Config().Width*r.engine.Config().Height,
		)
	}

	r.publishLocked(r.snap)
	go r.loop(ctx, r.done)
}

// Stop cancels the tick loop and waits for it to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	// Wake any reader blocked on Updates so it can observe the stop.
	r.mu.Lock()
	r.publishLocked(r.snap)
	r.mu.Unlock()
}

// Reset cancels the in-flight loop and starts a new game. Any tick
// computed against the old snapshot is discarded, never merged.
func (r *Runner) Reset() {
	r.Stop()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

// ChangeDirection writes the pending-direction slot. Rapid input
// between ticks collapses to the most recent value; there is no queue.
func (r *Runner) ChangeDirection(dir grid.Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := dir
	r.pending = &d
}

// Pause suspends the game. The loop parks on its idle poll.
func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = r.engine.Pause(r.snap)
	r.publishLocked(r.snap)
}

// Resume continues a paused game.
func (r *Runner) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = r.engine.Resume(r.snap)
	r.publishLocked(r.snap)
}

// TogglePause flips between playing and paused.
func (r *Runner) TogglePause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap.IsPaused() {
		r.snap = r.engine.Resume(r.snap)
	} else {
		r.snap = r.engine.Pause(r.snap)
	}
	r.publishLocked(r.snap)
}

// Snapshot returns the current snapshot.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Updates returns the latest-wins snapshot channel observers read.
func (r *Runner) Updates() <-chan Snapshot {
	return r.updates
}

// loop is the single thread of control advancing the snapshot. It
// reads the post-effect interval from the snapshot it just produced
// and suspends for that long before the next tick.
func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		r.mu.Lock()
		snap := r.snap
		r.mu.Unlock()

		wait := snap.Interval
		if _, live := snap.Playing(); !live {
			wait = idlePoll
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		r.mu.Lock()
		if ctx.Err() != nil {
			r.mu.Unlock()
			return
		}
		if _, live := r.snap.Playing(); !live {
			r.mu.Unlock()
			continue
		}

		pending := r.pending
		r.pending = nil
		now := time.Now()
		next, events := r.engine.Tick(r.snap, pending, now)
		r.snap = next
		r.publishLocked(next)
		obs := r.observer
		r.mu.Unlock()

		if obs != nil {
			obs.Observe(now, next, events)
		}

		if over, ended := next.Over(); ended {
			if r.logger != nil {
				r.logger.Info("game over",
					"reason", over.Reason.String(),
					"score", over.FinalScore,
					"level", over.FinalLevel,
				)
			}
		}
	}
}

// publishLocked pushes a snapshot onto the updates channel, replacing
// any unread one.
func (r *Runner) publishLocked(snap Snapshot) {
	for {
		select {
		case r.updates <- snap:
			return
		default:
			select {
			case <-r.updates:
			default:
			}
		}
	}
}
