package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qicun/SnakeGame/internal/game"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Grid.Width != 20 || cfg.Grid.Height != 20 {
		t.Errorf("grid = %dx%d, want 20x20", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Mode != "classic" || cfg.Difficulty != "normal" {
		t.Errorf("mode/difficulty = %s/%s, want classic/normal", cfg.Mode, cfg.Difficulty)
	}
	if cfg.BaseSpeedMS != 500 {
		t.Errorf("base speed = %d, want 500", cfg.BaseSpeedMS)
	}
	if !cfg.EnableEffects || !cfg.CompressReplays {
		t.Error("effects and replay compression should default on")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snake.yaml")
	content := `
grid:
  width: 30
  height: 15
mode: borderless
difficulty: hard
base_speed_ms: 250
enable_effects: false
max_obstacles: 8
time_limit_seconds: 120
compress_replays: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Grid.Width != 30 || cfg.Grid.Height != 15 {
		t.Errorf("grid = %dx%d, want 30x15", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Mode != "borderless" || cfg.Difficulty != "hard" {
		t.Errorf("mode/difficulty = %s/%s", cfg.Mode, cfg.Difficulty)
	}
	if cfg.BaseSpeedMS != 250 || cfg.EnableEffects || cfg.MaxObstacles != 8 {
		t.Errorf("tuning = %+v", cfg)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadMalformedCustomPathFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grid: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	// With no custom path and no user/local file the embedded default
	// applies. Isolate from any real user config by pointing HOME at a
	// scratch directory.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Width <= 0 || cfg.Grid.Height <= 0 {
		t.Errorf("embedded default grid = %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if _, ok := game.ParseMode(cfg.Mode); !ok {
		t.Errorf("embedded default mode %q unparseable", cfg.Mode)
	}
	if _, err := cfg.ToGame(1); err != nil {
		t.Errorf("embedded default not engine-ready: %v", err)
	}
}

func TestToGame(t *testing.T) {
	cfg := Default()
	cfg.Mode = "timed"
	cfg.Difficulty = "expert"
	cfg.TimeLimitSeconds = 90

	gc, err := cfg.ToGame(42)
	if err != nil {
		t.Fatalf("ToGame: %v", err)
	}

	if gc.Mode != game.ModeTimeChallenge {
		t.Errorf("mode = %v, want timed", gc.Mode)
	}
	if gc.Difficulty != game.DifficultyExpert {
		t.Errorf("difficulty = %v, want expert", gc.Difficulty)
	}
	if gc.BaseSpeed != 500*time.Millisecond {
		t.Errorf("base speed = %v, want 500ms", gc.BaseSpeed)
	}
	if gc.TimeLimit != 90*time.Second {
		t.Errorf("time limit = %v, want 90s", gc.TimeLimit)
	}
	if gc.Seed != 42 {
		t.Errorf("seed = %d, want 42", gc.Seed)
	}

	if _, err := game.NewEngine(gc); err != nil {
		t.Errorf("ToGame output rejected by engine: %v", err)
	}
}

func TestToGameRejectsUnknownNames(t *testing.T) {
	cfg := Default()
	cfg.Mode = "warp"
	if _, err := cfg.ToGame(1); err == nil {
		t.Error("unknown mode accepted")
	}

	cfg = Default()
	cfg.Difficulty = "brutal"
	if _, err := cfg.ToGame(1); err == nil {
		t.Error("unknown difficulty accepted")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()

	ApplyMode(&cfg, "obstacles")
	ApplyDifficulty(&cfg, "hard")
	if cfg.Mode != "obstacles" || cfg.Difficulty != "hard" {
		t.Errorf("overrides not applied: %s/%s", cfg.Mode, cfg.Difficulty)
	}

	// Empty overrides leave the config alone
	ApplyMode(&cfg, "")
	ApplyDifficulty(&cfg, "")
	if cfg.Mode != "obstacles" || cfg.Difficulty != "hard" {
		t.Errorf("empty override clobbered config: %s/%s", cfg.Mode, cfg.Difficulty)
	}
}
