package replay

import (
	"testing"
	"time"

	"github.com/qicun/SnakeGame/internal/game"
	"github.com/qicun/SnakeGame/internal/grid"
)

func testInitial() InitialState {
	return InitialState{
		Width: 20, Height: 20, Mode: "classic", Difficulty: "normal",
		Body: []grid.Position{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
		Dir:  "right", Food: grid.Position{X: 5, Y: 5}, FoodType: "regular",
	}
}

func TestRecorderOpensWithGameStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorder(testInitial(), start)

	l := r.Finalize()
	if l.ID == "" {
		t.Error("finalized log has no ID")
	}
	if l.Version != Version {
		t.Errorf("version = %q, want %q", l.Version, Version)
	}
	if len(l.Actions) != 1 {
		t.Fatalf("action count = %d, want just GameStart", len(l.Actions))
	}
	if gs, ok := l.Actions[0].(GameStart); !ok || gs.At != 0 {
		t.Errorf("opening action = %+v, want GameStart at 0", l.Actions[0])
	}
}

func TestRecorderObserveTranslatesEvents(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorder(testInitial(), start)

	snap := game.Snapshot{
		Snake: game.Snake{
			Body: []grid.Position{{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
			Dir:  grid.Right,
		},
	}
	events := []game.Event{
		game.Moved{Head: grid.Position{X: 11, Y: 10}, Dir: grid.Right, Ate: true},
		game.FoodEaten{Pos: grid.Position{X: 11, Y: 10}, Type: game.FoodRegular, Points: 10, Score: 10, Length: 4},
		game.FoodSpawned{Pos: grid.Position{X: 2, Y: 3}, Type: game.FoodBonus},
	}
	r.Observe(start.Add(500*time.Millisecond), snap, events)

	l := r.Finalize()
	if len(l.Actions) != 4 {
		t.Fatalf("action count = %d, want GameStart+Move+EatFood+SpawnFood", len(l.Actions))
	}

	move, ok := l.Actions[1].(Move)
	if !ok {
		t.Fatalf("actions[1] = %T, want Move", l.Actions[1])
	}
	if move.At != 500*time.Millisecond {
		t.Errorf("Move.At = %v, want 500ms", move.At)
	}
	if len(move.Body) != 4 || move.Body[0] != (grid.Position{X: 11, Y: 10}) {
		t.Errorf("Move body = %v", move.Body)
	}

	eat, ok := l.Actions[2].(EatFood)
	if !ok {
		t.Fatalf("actions[2] = %T, want EatFood", l.Actions[2])
	}
	if eat.Type != "regular" || eat.Score != 10 || eat.Length != 4 {
		t.Errorf("EatFood = %+v", eat)
	}

	spawn, ok := l.Actions[3].(SpawnFood)
	if !ok {
		t.Fatalf("actions[3] = %T, want SpawnFood", l.Actions[3])
	}
	if spawn.Type != "bonus" {
		t.Errorf("SpawnFood = %+v", spawn)
	}
}

func TestRecorderCopiesBody(t *testing.T) {
	start := time.Now()
	r := NewRecorder(testInitial(), start)

	body := []grid.Position{{X: 11, Y: 10}, {X: 10, Y: 10}}
	snap := game.Snapshot{Snake: game.Snake{Body: body, Dir: grid.Right}}
	r.Observe(start, snap, []game.Event{game.Moved{Head: body[0], Dir: grid.Right}})

	// Mutating the observed slice must not reach the log
	body[0] = grid.Position{X: 99, Y: 99}

	l := r.Finalize()
	move := l.Actions[1].(Move)
	if move.Body[0] != (grid.Position{X: 11, Y: 10}) {
		t.Errorf("log body aliased the snapshot: %v", move.Body[0])
	}
}

func TestRecorderSealedDropsObservations(t *testing.T) {
	start := time.Now()
	r := NewRecorder(testInitial(), start)

	first := r.Finalize()
	r.Observe(start.Add(time.Second), game.Snapshot{}, []game.Event{
		game.Ended{Reason: game.ReasonWallHit, Score: 10, Level: 1},
	})

	second := r.Finalize()
	if len(second.Actions) != len(first.Actions) {
		t.Errorf("sealed recorder grew from %d to %d actions", len(first.Actions), len(second.Actions))
	}
	if second.ID != first.ID {
		t.Error("repeated Finalize returned a different log")
	}
}

func TestRecorderClampsNegativeElapsed(t *testing.T) {
	start := time.Now()
	r := NewRecorder(testInitial(), start)

	// A clock adjustment could hand the recorder a pre-start instant
	r.Observe(start.Add(-time.Second), game.Snapshot{
		Snake: game.Snake{Body: []grid.Position{{X: 1, Y: 1}}},
	}, []game.Event{game.Moved{Head: grid.Position{X: 1, Y: 1}, Dir: grid.Up}})

	l := r.Finalize()
	if got := l.Actions[1].When(); got != 0 {
		t.Errorf("elapsed = %v, want clamped to 0", got)
	}
	if res := Validate(l); !res.OK() {
		t.Errorf("clamped log failed validation: %v", res.Errors)
	}
}

func TestRecorderEndToEndWithEngine(t *testing.T) {
	cfg := game.Config{
		Width: 20, Height: 20,
		Mode: game.ModeClassic, Difficulty: game.DifficultyNormal,
		BaseSpeed: 500 * time.Millisecond, EnableEffects: true, Seed: 1,
	}
	engine, err := game.NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := engine.Initialize(start)
	rec := NewRecorder(InitialFromSnapshot(snap, cfg), start)

	// Drive straight into the right wall
	now := start
	for i := 0; i < 20; i++ {
		now = now.Add(snap.Interval)
		var events []game.Event
		snap, events = engine.Tick(snap, nil, now)
		rec.Observe(now, snap, events)
		if _, over := snap.Over(); over {
			break
		}
	}

	if _, over := snap.Over(); !over {
		t.Fatal("game never ended against the wall")
	}

	l := rec.Finalize()
	if res := Validate(l); !res.OK() {
		t.Fatalf("recorded log failed validation: %v", res.Errors)
	}

	last := l.Actions[len(l.Actions)-1]
	if _, ok := last.(GameOver); !ok {
		t.Errorf("last action = %T, want GameOver", last)
	}

	// Playback at the end must agree with the live outcome
	p := NewPlayer(l)
	final := p.StateAt(p.Duration())
	if !final.Over {
		t.Error("replayed final state not over")
	}
	if final.Reason != "wall" {
		t.Errorf("replayed reason = %q, want wall", final.Reason)
	}
}
