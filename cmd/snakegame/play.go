package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qicun/SnakeGame/internal/config"
	"github.com/qicun/SnakeGame/internal/platform/tui"
	"github.com/qicun/SnakeGame/internal/storage"
)

var (
	flagConfig     string
	flagMode       string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a snake game. Without --mode, an interactive menu picks the
mode and difficulty.

Controls:
  Arrows/WASD - Steer
  P           - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Modes:
  classic     - Hard walls
  borderless  - Wrap around the edges
  obstacles   - Random walls on the board
  timed       - Beat the clock

Examples:
  snakegame play
  snakegame play --mode classic --difficulty easy
  snakegame play --mode timed --difficulty expert
  snakegame play --config ./my-snake.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: classic, borderless, obstacles, timed")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard, expert")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for records (default: OS username)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "snake"})

	fileCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early for the menu and board
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Without --mode, pick mode and difficulty interactively
	if flagMode == "" {
		selection, selErr := tui.RunModeSelector(width, height)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		if selection == nil {
			return // User backed out
		}
		fileCfg.Mode = selection.Mode.String()
		fileCfg.Difficulty = selection.Difficulty.String()
	} else {
		config.ApplyMode(&fileCfg, flagMode)
		config.ApplyDifficulty(&fileCfg, flagDifficulty)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gameCfg, err := fileCfg.ToGame(seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, results will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunGame(store, playerName(), fileCfg, gameCfg, width, height, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playerName resolves the name records are saved under.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}
