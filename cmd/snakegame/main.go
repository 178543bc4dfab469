// snakegame is a terminal snake game with rule variants, timed food
// effects, and byte-faithful replays.
//
// Usage:
//
//	snakegame play              - Play a game (interactive menu without flags)
//	snakegame replay list       - List stored replays
//	snakegame replay watch <id> - Watch a stored replay
//	snakegame scores            - Show the leaderboard
//	snakegame serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.snakegame/snake.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakegame",
	Short: "Snake - rule variants, timed effects, and replays in your terminal",
	Long: `snakegame is a terminal snake game with four rule variants
(classic, borderless, obstacles, timed), score-gated food effects, and
an action-log replay system that reconstructs any past game.

Available commands:
  play     - Play a game
  replay   - List, inspect, watch, and export stored replays
  scores   - View the leaderboard
  serve    - Start SSH server for remote play

Examples:
  snakegame play
  snakegame play --mode borderless --difficulty hard
  snakegame replay list
  snakegame replay watch 4f7c2a
  snakegame scores --browse
  snakegame serve --addr :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakegame/snake.db", "Path to game database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
