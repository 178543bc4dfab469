package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qicun/SnakeGame/internal/platform/tui"
	"github.com/qicun/SnakeGame/internal/replay"
	"github.com/qicun/SnakeGame/internal/storage"
)

var flagExportOut string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List, inspect, watch, and export stored replays",
	Long: `Work with stored game replays.

Examples:
  snakegame replay list
  snakegame replay info 4f7c2a0e-...
  snakegame replay watch 4f7c2a0e-...
  snakegame replay export 4f7c2a0e-... --out game.json
  snakegame replay delete 4f7c2a0e-...`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored replays",
	Run:   runReplayList,
}

var replayInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show a replay's validation report and action stats",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayInfo,
}

var replayWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Watch a replay (space play/pause, arrows seek)",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayWatch,
}

var replayExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a replay as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayExport,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

func init() {
	replayExportCmd.Flags().StringVar(&flagExportOut, "out", "", "Output file (default: stdout)")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayInfoCmd)
	replayCmd.AddCommand(replayWatchCmd)
	replayCmd.AddCommand(replayExportCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

// openStore opens the database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return store
}

// loadLog fetches and decodes a stored replay or exits.
func loadLog(store *storage.Store, id string) replay.Log {
	data, err := store.LoadReplay(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no replay with ID %q\n", id)
		os.Exit(1)
	}

	logData, err := replay.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logData
}

func runReplayList(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	metas, err := store.ListReplays(50)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(metas) == 0 {
		fmt.Println("No replays stored yet. Finish a game to record one.")
		return
	}

	fmt.Printf("%-38s %-12s %-12s %8s %10s  %s\n", "ID", "PLAYER", "MODE", "SCORE", "SIZE", "RECORDED")
	for _, m := range metas {
		fmt.Printf("%-38s %-12s %-12s %8d %9dB  %s\n",
			m.ID, m.Player, m.Mode, m.Score, m.Size, m.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplayInfo(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	logData := loadLog(store, args[0])
	result := replay.Validate(logData)

	fmt.Printf("Replay %s\n", logData.ID)
	fmt.Printf("  version:   %s\n", logData.Version)
	fmt.Printf("  recorded:  %s\n", logData.RecordedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  mode:      %s / %s\n", logData.Initial.Mode, logData.Initial.Difficulty)
	fmt.Printf("  grid:      %dx%d\n", logData.Initial.Width, logData.Initial.Height)
	fmt.Printf("  duration:  %s\n", logData.Duration())
	fmt.Printf("  score:     %d\n", logData.FinalScore())

	moves, eats, spawns := 0, 0, 0
	for _, a := range logData.Actions {
		switch a.(type) {
		case replay.Move:
			moves++
		case replay.EatFood:
			eats++
		case replay.SpawnFood:
			spawns++
		}
	}
	fmt.Printf("  actions:   %d total (%d moves, %d eats, %d spawns)\n", len(logData.Actions), moves, eats, spawns)

	if result.OK() {
		fmt.Println("  valid:     yes")
	} else {
		fmt.Println("  valid:     NO")
		for _, e := range result.Errors {
			fmt.Printf("    error: %s\n", e)
		}
	}
	for _, w := range result.Warnings {
		fmt.Printf("    warning: %s\n", w)
	}
}

func runReplayWatch(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	logData := loadLog(store, args[0])
	if result := replay.Validate(logData); !result.OK() {
		fmt.Fprintln(os.Stderr, "Error: replay failed validation:")
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	if err := tui.RunReplay(replay.NewPlayer(logData), width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReplayExport(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	logData := loadLog(store, args[0])
	data, err := logData.Encode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagExportOut == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported replay %s to %s\n", logData.ID, flagExportOut)
}

func runReplayDelete(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted replay %s\n", args[0])
}
