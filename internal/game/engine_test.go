package game

import (
	"testing"
	"time"

	"github.com/qicun/SnakeGame/internal/grid"
)

func testConfig() Config {
	return Config{
		Width:         20,
		Height:        20,
		Mode:          ModeClassic,
		Difficulty:    DifficultyNormal,
		BaseSpeed:     500 * time.Millisecond,
		EnableEffects: true,
		Seed:          1,
	}
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -1 }, true},
		{"grid too small for snake", func(c *Config) { c.Width, c.Height = 1, 3 }, true},
		{"zero base speed", func(c *Config) { c.BaseSpeed = 0 }, true},
		{"negative obstacles", func(c *Config) { c.Mode = ModeObstacles; c.MaxObstacles = -1 }, true},
		{"timed without limit", func(c *Config) { c.Mode = ModeTimeChallenge }, true},
		{"timed with limit", func(c *Config) { c.Mode = ModeTimeChallenge; c.TimeLimit = time.Minute }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitialize(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := e.Initialize(now)

	wantBody := []grid.Position{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	for i, p := range wantBody {
		if snap.Snake.Body[i] != p {
			t.Errorf("body[%d] = %v, want %v", i, snap.Snake.Body[i], p)
		}
	}
	if snap.Snake.Dir != grid.Right {
		t.Errorf("dir = %v, want Right", snap.Snake.Dir)
	}

	p, ok := snap.Playing()
	if !ok {
		t.Fatal("fresh snapshot not Playing")
	}
	if p.Score != 0 || p.Level != 1 || p.Speed != 500 {
		t.Errorf("playing = %+v, want score 0, level 1, speed 500", p)
	}

	if snap.Snake.Occupies(snap.Food.Pos) {
		t.Errorf("food spawned on the snake at %v", snap.Food.Pos)
	}
	if !snap.Food.Pos.InBounds(20, 20) {
		t.Errorf("food off grid: %v", snap.Food.Pos)
	}
	if snap.Interval != 500*time.Millisecond {
		t.Errorf("interval = %v, want 500ms", snap.Interval)
	}
	if !snap.StartedAt.Equal(now) {
		t.Errorf("StartedAt = %v, want %v", snap.StartedAt, now)
	}
}

func TestInitializeDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := newTestEngine(t, testConfig()).Initialize(now)
	b := newTestEngine(t, testConfig()).Initialize(now)

	if a.Food.Pos != b.Food.Pos || a.Food.Type != b.Food.Type {
		t.Errorf("same seed produced different food: %v vs %v", a.Food, b.Food)
	}
}

func TestTickMovesSnake(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := e.Initialize(now)
	snap.Food.Pos = grid.Position{X: 0, Y: 0} // Keep it out of the way

	next, events := e.Tick(snap, nil, now.Add(500*time.Millisecond))

	wantBody := []grid.Position{{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}}
	for i, p := range wantBody {
		if next.Snake.Body[i] != p {
			t.Errorf("body[%d] = %v, want %v", i, next.Snake.Body[i], p)
		}
	}
	if next.Snake.Len() != 3 {
		t.Errorf("length = %d, want 3", next.Snake.Len())
	}

	if len(events) != 1 {
		t.Fatalf("events = %v, want one Moved", events)
	}
	m, ok := events[0].(Moved)
	if !ok {
		t.Fatalf("event = %T, want Moved", events[0])
	}
	if m.Head != (grid.Position{X: 11, Y: 10}) || m.Ate {
		t.Errorf("Moved = %+v", m)
	}

	// The input snapshot must be untouched
	if snap.Snake.Head() != (grid.Position{X: 10, Y: 10}) {
		t.Errorf("Tick mutated the input snapshot: head %v", snap.Snake.Head())
	}
}

func TestTickPendingDirection(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Food.Pos = grid.Position{X: 0, Y: 0}

	up := grid.Up
	next, _ := e.Tick(snap, &up, now)
	if next.Snake.Head() != (grid.Position{X: 10, Y: 9}) {
		t.Errorf("head = %v, want (10,9)", next.Snake.Head())
	}
	if next.Snake.Dir != grid.Up {
		t.Errorf("dir = %v, want Up", next.Snake.Dir)
	}

	// An opposite-direction request keeps the current heading
	left := grid.Left
	next, _ = e.Tick(snap, &left, now)
	if next.Snake.Head() != (grid.Position{X: 11, Y: 10}) {
		t.Errorf("head after rejected reverse = %v, want (11,10)", next.Snake.Head())
	}
}

func TestTickEatGrowsAndScores(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Food = Food{Pos: grid.Position{X: 11, Y: 10}, Type: FoodRegular, CreatedAt: now}

	next, events := e.Tick(snap, nil, now)

	if next.Snake.Len() != 4 {
		t.Errorf("length = %d, want 4", next.Snake.Len())
	}
	p, ok := next.Playing()
	if !ok {
		t.Fatal("snapshot not Playing after eating")
	}
	if p.Score != 10 {
		t.Errorf("score = %d, want 10", p.Score)
	}

	if len(events) != 3 {
		t.Fatalf("event count = %d, want Moved+FoodEaten+FoodSpawned", len(events))
	}
	eaten, ok := events[1].(FoodEaten)
	if !ok {
		t.Fatalf("events[1] = %T, want FoodEaten", events[1])
	}
	if eaten.Points != 10 || eaten.Score != 10 || eaten.Length != 4 {
		t.Errorf("FoodEaten = %+v", eaten)
	}
	spawned, ok := events[2].(FoodSpawned)
	if !ok {
		t.Fatalf("events[2] = %T, want FoodSpawned", events[2])
	}
	if next.Snake.Occupies(spawned.Pos) {
		t.Errorf("new food on the snake at %v", spawned.Pos)
	}
	if next.Food.Pos != spawned.Pos {
		t.Errorf("snapshot food %v != spawned event %v", next.Food.Pos, spawned.Pos)
	}
}

func TestTickHardDifficultyScoresDouble(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty = DifficultyHard
	e := newTestEngine(t, cfg)
	now := time.Now()
	snap := e.Initialize(now)
	snap.Food = Food{Pos: grid.Position{X: 11, Y: 10}, Type: FoodRegular, CreatedAt: now}

	next, _ := e.Tick(snap, nil, now)
	if got := next.Score(); got != 20 {
		t.Errorf("score = %d, want 20 on hard", got)
	}
}

func TestTickWallCollision(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Snake = Snake{Body: []grid.Position{{X: 19, Y: 10}, {X: 18, Y: 10}}, Dir: grid.Right}
	snap.Food.Pos = grid.Position{X: 0, Y: 0}

	next, events := e.Tick(snap, nil, now)

	g, ok := next.Over()
	if !ok {
		t.Fatal("expected GameOver after driving into the wall")
	}
	if g.Reason != ReasonWallHit {
		t.Errorf("reason = %v, want wall", g.Reason)
	}

	if len(events) != 1 {
		t.Fatalf("events = %v, want one Ended", events)
	}
	if _, ok := events[0].(Ended); !ok {
		t.Errorf("event = %T, want Ended", events[0])
	}

	// The snake is left where it was: the fatal move never commits
	if next.Snake.Head() != (grid.Position{X: 19, Y: 10}) {
		t.Errorf("head = %v, want unchanged (19,10)", next.Snake.Head())
	}
}

func TestTickSelfCollision(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Snake = Snake{
		Body: []grid.Position{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}},
		Dir:  grid.Right,
	}
	snap.Food.Pos = grid.Position{X: 0, Y: 0}

	down := grid.Down
	next, _ := e.Tick(snap, &down, now)

	g, ok := next.Over()
	if !ok {
		t.Fatal("expected GameOver after biting the body")
	}
	if g.Reason != ReasonSelfHit {
		t.Errorf("reason = %v, want self", g.Reason)
	}
}

func TestTickObstacleCollision(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Obstacles = map[grid.Position]bool{{X: 11, Y: 10}: true}
	snap.Food.Pos = grid.Position{X: 0, Y: 0}

	next, _ := e.Tick(snap, nil, now)

	g, ok := next.Over()
	if !ok {
		t.Fatal("expected GameOver on the obstacle")
	}
	if g.Reason != ReasonObstacleHit {
		t.Errorf("reason = %v, want obstacle", g.Reason)
	}
}

func TestBorderlessTickWraps(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = ModeBorderless
	e := newTestEngine(t, cfg)
	now := time.Now()
	snap := e.Initialize(now)
	snap.Snake = Snake{Body: []grid.Position{{X: 19, Y: 10}, {X: 18, Y: 10}}, Dir: grid.Right}
	snap.Food.Pos = grid.Position{X: 5, Y: 5}

	next, _ := e.Tick(snap, nil, now)

	if _, over := next.Over(); over {
		t.Fatal("borderless mode ended at the edge")
	}
	if next.Snake.Head() != (grid.Position{X: 0, Y: 10}) {
		t.Errorf("head = %v, want wrapped (0,10)", next.Snake.Head())
	}
}

func TestObstaclesModeInitialize(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = ModeObstacles
	cfg.MaxObstacles = 5
	e := newTestEngine(t, cfg)
	snap := e.Initialize(time.Now())

	if len(snap.Obstacles) != 5 {
		t.Fatalf("obstacle count = %d, want 5", len(snap.Obstacles))
	}
	for p := range snap.Obstacles {
		if snap.Snake.Occupies(p) {
			t.Errorf("obstacle on the snake at %v", p)
		}
		if p == snap.Food.Pos {
			t.Errorf("food on an obstacle at %v", p)
		}
	}
}

func TestTimedModeTimeUp(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = ModeTimeChallenge
	cfg.TimeLimit = 60 * time.Second
	e := newTestEngine(t, cfg)

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := e.Initialize(start)
	snap.Food.Pos = grid.Position{X: 0, Y: 0}

	// Just under the limit the game keeps running
	next, _ := e.Tick(snap, nil, start.Add(59*time.Second))
	if _, over := next.Over(); over {
		t.Fatal("game ended before the time limit")
	}

	// At the limit it ends with TimeUp even though the move was safe
	next, events := e.Tick(snap, nil, start.Add(60*time.Second))
	g, ok := next.Over()
	if !ok {
		t.Fatal("expected GameOver at the time limit")
	}
	if g.Reason != ReasonTimeUp {
		t.Errorf("reason = %v, want timeup", g.Reason)
	}
	if len(events) != 1 {
		t.Errorf("events = %v, want one Ended", events)
	}
}

func TestGhostEffectPassesWalls(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Snake = Snake{Body: []grid.Position{{X: 19, Y: 10}, {X: 18, Y: 10}}, Dir: grid.Right}
	snap.Food.Pos = grid.Position{X: 5, Y: 5}
	snap.Effects = snap.Effects.Add(Effect{Kind: EffectGhost, Duration: 8 * time.Second}, now)

	next, _ := e.Tick(snap, nil, now)

	if _, over := next.Over(); over {
		t.Fatal("ghost snake died at the wall")
	}
	if next.Snake.Head() != (grid.Position{X: 0, Y: 10}) {
		t.Errorf("head = %v, want carried across to (0,10)", next.Snake.Head())
	}
}

func TestGhostEffectPassesSelf(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Snake = Snake{
		Body: []grid.Position{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}},
		Dir:  grid.Right,
	}
	snap.Food.Pos = grid.Position{X: 0, Y: 0}
	snap.Effects = snap.Effects.Add(Effect{Kind: EffectGhost, Duration: 8 * time.Second}, now)

	down := grid.Down
	next, _ := e.Tick(snap, &down, now)

	if _, over := next.Over(); over {
		t.Fatal("ghost snake died biting its body")
	}
	if next.Snake.Head() != (grid.Position{X: 5, Y: 6}) {
		t.Errorf("head = %v, want (5,6)", next.Snake.Head())
	}
}

func TestShrinkFoodDropsTail(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	shrink := &Effect{Kind: EffectShrink}
	snap.Food = Food{Pos: grid.Position{X: 11, Y: 10}, Type: FoodShrink, Effect: shrink, CreatedAt: now}

	next, _ := e.Tick(snap, nil, now)

	// Grow to 4, then shrink back to 3
	if next.Snake.Len() != 3 {
		t.Errorf("length = %d, want 3", next.Snake.Len())
	}
	if got := next.Score(); got != 5 {
		t.Errorf("score = %d, want 5", got)
	}
}

func TestSpeedUpFoodShortensInterval(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	eff := &Effect{Kind: EffectSpeedUp, Duration: 5 * time.Second}
	snap.Food = Food{Pos: grid.Position{X: 11, Y: 10}, Type: FoodSpeedUp, Effect: eff, CreatedAt: now}

	next, _ := e.Tick(snap, nil, now)

	if next.Interval != 333*time.Millisecond {
		t.Errorf("interval = %v, want 333ms (500 * 2/3)", next.Interval)
	}
	// The level-derived base speed stays untouched so the effect wears
	// off cleanly
	p, _ := next.Playing()
	if p.Speed != 500 {
		t.Errorf("playing speed = %d, want 500", p.Speed)
	}

	// Once the effect expires the interval returns to base
	next.Food.Pos = grid.Position{X: 0, Y: 0}
	after, _ := e.Tick(next, nil, now.Add(6*time.Second))
	if after.Interval != 500*time.Millisecond {
		t.Errorf("post-expiry interval = %v, want 500ms", after.Interval)
	}
}

func TestEasyDifficultyStretchesInterval(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty = DifficultyEasy
	e := newTestEngine(t, cfg)
	snap := e.Initialize(time.Now())

	if snap.Interval != 625*time.Millisecond {
		t.Errorf("interval = %v, want 625ms (500 * 1.25)", snap.Interval)
	}
}

func TestPauseResume(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.Food.Pos = grid.Position{X: 0, Y: 0}

	paused := e.Pause(snap)
	if !paused.IsPaused() {
		t.Fatal("Pause did not suspend the game")
	}

	// Ticks are no-ops while paused
	ticked, events := e.Tick(paused, nil, now)
	if events != nil {
		t.Errorf("paused tick produced events: %v", events)
	}
	if ticked.Snake.Head() != snap.Snake.Head() {
		t.Errorf("paused tick moved the snake to %v", ticked.Snake.Head())
	}

	resumed := e.Resume(paused)
	p, ok := resumed.Playing()
	if !ok {
		t.Fatal("Resume did not restore Playing")
	}
	original := snap.State.(Playing)
	if p != original {
		t.Errorf("resumed state %+v != original %+v", p, original)
	}
}

func TestTickNoOpWhenOver(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.State = GameOver{FinalScore: 50, FinalLevel: 1, Reason: ReasonWallHit}

	next, events := e.Tick(snap, nil, now)
	if events != nil {
		t.Errorf("terminal tick produced events: %v", events)
	}
	if _, over := next.Over(); !over {
		t.Error("terminal tick changed the state")
	}
}

func TestResetStartsFresh(t *testing.T) {
	e := newTestEngine(t, testConfig())
	now := time.Now()
	snap := e.Initialize(now)
	snap.State = GameOver{FinalScore: 50, FinalLevel: 1, Reason: ReasonWallHit}

	fresh := e.Reset(now.Add(time.Minute))
	p, ok := fresh.Playing()
	if !ok {
		t.Fatal("Reset snapshot not Playing")
	}
	if p.Score != 0 || p.Level != 1 {
		t.Errorf("reset playing = %+v, want zeroed", p)
	}
	if fresh.Snake.Head() != (grid.Position{X: 10, Y: 10}) {
		t.Errorf("reset head = %v, want centered", fresh.Snake.Head())
	}
}

func TestValidDirectionChange(t *testing.T) {
	e := newTestEngine(t, testConfig())
	snap := e.Initialize(time.Now())

	if !e.ValidDirectionChange(snap, grid.Up) {
		t.Error("perpendicular turn rejected")
	}
	if e.ValidDirectionChange(snap, grid.Left) {
		t.Error("reverse into the body accepted")
	}
}
