// Package config provides YAML-based configuration loading for the
// snake game: the recognized option surface, difficulty presets, and
// the search chain from custom path down to embedded defaults.
package config

import (
	"fmt"
	"time"

	"github.com/qicun/SnakeGame/internal/game"
)

// Config is the configuration surface recognized by the engine, in its
// file form. Strings are parsed into their typed counterparts by
// ToGame.
type Config struct {
	Grid             GridConfig `yaml:"grid" json:"grid"`
	Mode             string     `yaml:"mode" json:"mode"`
	Difficulty       string     `yaml:"difficulty" json:"difficulty"`
	BaseSpeedMS      int        `yaml:"base_speed_ms" json:"base_speed_ms"`
	EnableEffects    bool       `yaml:"enable_effects" json:"enable_effects"`
	MaxObstacles     int        `yaml:"max_obstacles" json:"max_obstacles"`
	TimeLimitSeconds int        `yaml:"time_limit_seconds" json:"time_limit_seconds"`
	CompressReplays  bool       `yaml:"compress_replays" json:"compress_replays"`
}

// GridConfig holds the board dimensions.
type GridConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Default returns the hardcoded fallback configuration, used when even
// the embedded default cannot be parsed.
func Default() Config {
	return Config{
		Grid:             GridConfig{Width: 20, Height: 20},
		Mode:             game.ModeClassic.String(),
		Difficulty:       game.DifficultyNormal.String(),
		BaseSpeedMS:      500,
		EnableEffects:    true,
		MaxObstacles:     5,
		TimeLimitSeconds: 60,
		CompressReplays:  true,
	}
}

// ToGame parses the file config into the engine config. Unknown mode
// or difficulty names are configuration errors; dimension and speed
// validation is left to the engine.
func (c Config) ToGame(seed int64) (game.Config, error) {
	mode, ok := game.ParseMode(c.Mode)
	if !ok {
		return game.Config{}, fmt.Errorf("config: unknown game mode %q", c.Mode)
	}
	difficulty, ok := game.ParseDifficulty(c.Difficulty)
	if !ok {
		return game.Config{}, fmt.Errorf("config: unknown difficulty %q", c.Difficulty)
	}

	return game.Config{
		Width:         c.Grid.Width,
		Height:        c.Grid.Height,
		Mode:          mode,
		Difficulty:    difficulty,
		BaseSpeed:     time.Duration(c.BaseSpeedMS) * time.Millisecond,
		EnableEffects: c.EnableEffects,
		MaxObstacles:  c.MaxObstacles,
		TimeLimit:     time.Duration(c.TimeLimitSeconds) * time.Second,
		Seed:          seed,
	}, nil
}
