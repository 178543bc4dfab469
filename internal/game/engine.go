package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/qicun/SnakeGame/internal/grid"
)

// Config is the engine-level configuration. Malformed values are
// rejected by NewEngine; past that point every tick is a total
// function over well-formed snapshots.
type Config struct {
	Width         int
	Height        int
	Mode          Mode
	Difficulty    Difficulty
	BaseSpeed     time.Duration
	EnableEffects bool
	MaxObstacles  int
	TimeLimit     time.Duration
	Seed          int64
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("game: grid dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Width*c.Height < c.Difficulty.InitialLength()+1 {
		return fmt.Errorf("game: grid %dx%d too small for initial snake", c.Width, c.Height)
	}
	if c.BaseSpeed <= 0 {
		return fmt.Errorf("game: base speed must be positive, got %v", c.BaseSpeed)
	}
	if c.Mode == ModeObstacles && c.MaxObstacles < 0 {
		return fmt.Errorf("game: max obstacles must not be negative, got %d", c.MaxObstacles)
	}
	if c.Mode == ModeTimeChallenge && c.TimeLimit <= 0 {
		return fmt.Errorf("game: time challenge needs a positive time limit, got %v", c.TimeLimit)
	}
	return nil
}

// Engine advances snapshots tick by tick. It holds only the static
// configuration, the selected mode strategy, and the RNG; all mutable
// game state lives in the snapshot, so Tick stays a pure function of
// (snapshot, input, now) up to RNG draws.
type Engine struct {
	cfg      Config
	strategy Strategy
	rng      *rand.Rand
}

// NewEngine validates the config and selects the mode strategy. A zero
// seed falls back to the wall clock.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg:      cfg,
		strategy: StrategyFor(cfg.Mode),
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Initialize creates a fresh Playing snapshot: a new snake centered on
// the grid facing right, mode obstacles, and an initial food spawn.
func (e *Engine) Initialize(now time.Time) Snapshot {
	start := grid.Position{X: e.cfg.Width / 2, Y: e.cfg.Height / 2}
	snake := NewSnake(start, grid.Right, e.cfg.Difficulty.InitialLength())

	occupied := make(map[grid.Position]bool, snake.Len())
	for _, seg := range snake.Body {
		occupied[seg] = true
	}

	obstacles := e.strategy.GenerateObstacles(e.rng, e.cfg.Width, e.cfg.Height, occupied, e.cfg.MaxObstacles)
	for p := range obstacles {
		occupied[p] = true
	}

	food := SpawnFood(e.rng, e.cfg.Width, e.cfg.Height, occupied, e.cfg.EnableEffects, 0, now)

	playing := Playing{Score: 0, Level: 1, Speed: int(e.cfg.BaseSpeed / time.Millisecond)}
	return Snapshot{
		Width:     e.cfg.Width,
		Height:    e.cfg.Height,
		Snake:     snake,
		Food:      food,
		State:     playing,
		Obstacles: obstacles,
		Effects:   nil,
		StartedAt: now,
		Interval:  e.interval(playing.Speed),
	}
}

// Reset discards the old snapshot and builds a brand-new game.
func (e *Engine) Reset(now time.Time) Snapshot {
	return e.Initialize(now)
}

// ValidDirectionChange reports whether the pending direction would be
// accepted. This is advisory only; Tick re-validates through the
// snake's own steering check, so a double rejection is harmless.
func (e *Engine) ValidDirectionChange(snap Snapshot, dir grid.Direction) bool {
	return snap.Snake.Steer(dir) == dir
}

// Pause suspends a playing game, preserving its state verbatim.
// Any other state is returned unchanged.
func (e *Engine) Pause(snap Snapshot) Snapshot {
	if p, ok := snap.State.(Playing); ok {
		snap.State = Paused{Prior: p}
	}
	return snap
}

// Resume restores a paused game. Any other state is returned
// unchanged.
func (e *Engine) Resume(snap Snapshot) Snapshot {
	if p, ok := snap.State.(Paused); ok {
		snap.State = p.Prior
	}
	return snap
}

// Tick advances the snapshot by one step. The pending direction is the
// input slot's current value, nil when no input arrived. Tick is a
// no-op unless the state is Playing. The returned events describe what
// happened this tick, in order.
func (e *Engine) Tick(snap Snapshot, pending *grid.Direction, now time.Time) (Snapshot, []Event) {
	playing, ok := snap.State.(Playing)
	if !ok {
		return snap, nil
	}

	// Time limit first: a timed game ends even on a collision tick.
	if e.strategy.SupportsTimeLimit() && now.Sub(snap.StartedAt) >= e.cfg.TimeLimit {
		return e.endGame(snap, playing, ReasonTimeUp)
	}

	mod, effects := snap.Effects.Apply(playing.Speed, now)
	snap.Effects = effects

	dir := snap.Snake.Dir
	if pending != nil {
		dir = *pending
	}

	// Project the move to know whether this tick eats, then commit
	// with the matching grow flag.
	trial := e.strategy.HandleMovement(snap.Snake, dir, e.cfg.Width, e.cfg.Height, false)
	willEat := trial.Head() == snap.Food.Pos
	newSnake := trial
	if willEat {
		newSnake = e.strategy.HandleMovement(snap.Snake, dir, e.cfg.Width, e.cfg.Height, true)
	}

	// Collision priority: boundary, then self, then obstacles. The
	// first hit ends the game; nothing else changes past that point.
	if !mod.PassWalls && e.strategy.BoundaryCollision(newSnake, e.cfg.Width, e.cfg.Height) {
		return e.endGame(snap, playing, ReasonWallHit)
	}
	if mod.PassWalls && !newSnake.Head().InBounds(e.cfg.Width, e.cfg.Height) {
		// Ghost pass-through carries the head across the edge.
		newSnake = newSnake.WrapHead(e.cfg.Width, e.cfg.Height)
	}
	if !mod.PassSelf && newSnake.SelfCollision() {
		return e.endGame(snap, playing, ReasonSelfHit)
	}
	if !mod.PassWalls && snap.Obstacles[newSnake.Head()] {
		return e.endGame(snap, playing, ReasonObstacleHit)
	}

	events := []Event{Moved{Head: newSnake.Head(), Dir: newSnake.Dir, Ate: willEat}}

	food := snap.Food
	if willEat {
		eaten := snap.Food

		if e.cfg.EnableEffects && eaten.Effect != nil {
			snap.Effects = snap.Effects.Add(*eaten.Effect, now)
		}
		if eaten.Type == FoodShrink && newSnake.Len() > 2 {
			newSnake = newSnake.DropTail()
		}

		points := e.cfg.Difficulty.Score(eaten.Type.Points())
		playing = playing.AddScore(points)

		occupied := make(map[grid.Position]bool, newSnake.Len()+len(snap.Obstacles))
		for _, seg := range newSnake.Body {
			occupied[seg] = true
		}
		for p := range snap.Obstacles {
			occupied[p] = true
		}
		food = SpawnFood(e.rng, e.cfg.Width, e.cfg.Height, occupied, e.cfg.EnableEffects, playing.Score, now)

		events = append(events,
			FoodEaten{Pos: eaten.Pos, Type: eaten.Type, Points: points, Score: playing.Score, Length: newSnake.Len()},
			FoodSpawned{Pos: food.Pos, Type: food.Type},
		)

		// Speed may have changed with the level; refold so the
		// interval below reflects both level and active effects.
		mod, snap.Effects = snap.Effects.Apply(playing.Speed, now)
	}

	snap.Snake = newSnake
	snap.Food = food
	snap.State = playing
	snap.Interval = e.interval(mod.Speed)
	return snap, events
}

// endGame transitions to GameOver with the given reason.
func (e *Engine) endGame(snap Snapshot, playing Playing, reason EndReason) (Snapshot, []Event) {
	snap.State = GameOver{FinalScore: playing.Score, FinalLevel: playing.Level, Reason: reason}
	return snap, []Event{Ended{Reason: reason, Score: playing.Score, Level: playing.Level}}
}

// interval converts a post-effect speed in milliseconds to the tick
// cadence, scaled by the difficulty speed factor.
func (e *Engine) interval(speedMS int) time.Duration {
	ms := float64(speedMS) * e.cfg.Difficulty.SpeedFactor()
	return time.Duration(ms * float64(time.Millisecond))
}
