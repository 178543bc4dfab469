package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qicun/SnakeGame/internal/game"
	"github.com/qicun/SnakeGame/internal/platform/tui"
	"github.com/qicun/SnakeGame/internal/storage"
)

var (
	flagScoresMode   string
	flagScoresLimit  int
	flagScoresBrowse bool
	flagScoresStats  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show top scores and the leaderboard",
	Long: `Print the top scores for a game mode, or browse the leaderboard
interactively with --browse.

Examples:
  snakegame scores
  snakegame scores --mode borderless --limit 20
  snakegame scores --stats
  snakegame scores --browse`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "classic", "Game mode (classic, borderless, obstacles, timed)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Browse the leaderboard interactively")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics per mode")
}

func runScores(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if flagScoresBrowse {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagScoresStats {
		printStats(store)
		return
	}

	if _, ok := game.ParseMode(flagScoresMode); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagScoresMode)
		os.Exit(1)
	}

	records, err := store.TopRecords(flagScoresMode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Printf("No games recorded for mode %q yet.\n", flagScoresMode)
		return
	}

	fmt.Printf("Top scores — %s\n\n", flagScoresMode)
	fmt.Printf("%4s %-14s %-10s %8s %6s %9s  %s\n", "#", "PLAYER", "DIFF", "SCORE", "LEVEL", "DURATION", "WHEN")
	for i, r := range records {
		fmt.Printf("%4d %-14s %-10s %8d %6d %8ds  %s\n",
			i+1, r.Player, r.Difficulty, r.Score, r.Level, r.DurationSecs,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStats(store *storage.Store) {
	fmt.Printf("%-12s %8s %10s %10s %12s  %s\n", "MODE", "GAMES", "HIGH", "AVG", "TOTAL", "LAST PLAYED")
	for _, m := range game.Modes() {
		st, err := store.GetGameStats(m.String())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if st == nil || st.GamesCount == 0 {
			fmt.Printf("%-12s %8d\n", m, 0)
			continue
		}
		fmt.Printf("%-12s %8d %10d %10.1f %12d  %s\n",
			m, st.GamesCount, st.HighScore, st.AvgScore, st.TotalScore,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
