package tui

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/qicun/SnakeGame/internal/config"
	"github.com/qicun/SnakeGame/internal/game"
	"github.com/qicun/SnakeGame/internal/replay"
	"github.com/qicun/SnakeGame/internal/storage"
)

// SnapshotMsg delivers the runner's latest snapshot to the model.
type SnapshotMsg game.Snapshot

// recorderSlot is the swappable observer wired into the runner. A
// restart swaps in a fresh recorder without rebuilding the runner.
type recorderSlot struct {
	mu  sync.Mutex
	rec *replay.Recorder
}

func (s *recorderSlot) set(rec *replay.Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
}

func (s *recorderSlot) current() *replay.Recorder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec
}

// Observe forwards tick output to the current recorder.
func (s *recorderSlot) Observe(now time.Time, snap game.Snapshot, events []game.Event) {
	if rec := s.current(); rec != nil {
		rec.Observe(now, snap, events)
	}
}

// GameModel is the Bubble Tea model for a live game. The runner owns
// the tick loop; the model subscribes to its snapshot channel, feeds
// it direction input, and persists results once per finished game.
type GameModel struct {
	store     *storage.Store
	player    string
	fileCfg   config.Config
	engine    *game.Engine
	runner    *game.Runner
	slot      *recorderSlot
	logger    *log.Logger
	keyMapper *KeyMapper

	screen     *Screen
	snap       game.Snapshot
	width      int
	height     int
	saved      bool
	quitting   bool
	backToMenu bool
}

// NewGameModel builds the engine and runner for one game session.
// The player name labels records and leaderboard rows; logger may be
// nil.
func NewGameModel(store *storage.Store, player string, fileCfg config.Config, gameCfg game.Config, width, height int, logger *log.Logger) (*GameModel, error) {
	engine, err := game.NewEngine(gameCfg)
	if err != nil {
		return nil, err
	}

	slot := &recorderSlot{}
	opts := []game.RunnerOption{game.WithObserver(slot)}
	if logger != nil {
		opts = append(opts, game.WithLogger(logger))
	}
	runner := game.NewRunner(engine, opts...)

	return &GameModel{
		store:     store,
		player:    player,
		fileCfg:   fileCfg,
		engine:    engine,
		runner:    runner,
		slot:      slot,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		screen:    NewScreen(width, height),
		width:     width,
		height:    height,
	}, nil
}

// Init starts the runner and subscribes to its snapshots.
func (m *GameModel) Init() tea.Cmd {
	m.runner.Start()
	m.snap = m.runner.Snapshot()
	m.slot.set(replay.NewRecorder(replay.InitialFromSnapshot(m.snap, m.engine.Config()), m.snap.StartedAt))
	return m.waitSnapshot()
}

// waitSnapshot blocks on the runner's latest-wins channel.
func (m *GameModel) waitSnapshot() tea.Cmd {
	ch := m.runner.Updates()
	return func() tea.Msg {
		return SnapshotMsg(<-ch)
	}
}

// Update handles messages.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case SnapshotMsg:
		m.snap = game.Snapshot(msg)
		if _, over := m.snap.Over(); over && !m.saved {
			m.persistResults()
			m.saved = true
		}
		if m.quitting {
			return m, nil
		}
		return m, m.waitSnapshot()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if dir, ok := m.keyMapper.MapDirection(msg); ok {
		m.runner.ChangeDirection(dir)
		return m, nil
	}

	switch m.keyMapper.MapAction(msg) {
	case GameActionQuit:
		m.quitting = true
		m.runner.Stop()
		return m, tea.Quit

	case GameActionPause:
		m.runner.TogglePause()

	case GameActionRestart:
		if _, over := m.snap.Over(); over {
			m.restart()
		}

	case GameActionBack:
		_, over := m.snap.Over()
		if over || m.snap.IsPaused() {
			m.backToMenu = true
			m.runner.Stop()
			// Standalone programs exit here; the SSH session model
			// swallows the quit and restarts its menu instead.
			return m, tea.Quit
		}
	}

	return m, nil
}

// restart discards the finished game and starts a fresh one with a
// fresh replay log.
func (m *GameModel) restart() {
	m.runner.Reset()
	m.snap = m.runner.Snapshot()
	m.slot.set(replay.NewRecorder(replay.InitialFromSnapshot(m.snap, m.engine.Config()), m.snap.StartedAt))
	m.saved = false
}

// persistResults saves the record, replay, and leaderboard entry for a
// finished game. Failures are logged and never interrupt play.
func (m *GameModel) persistResults() {
	over, ok := m.snap.Over()
	if !ok || m.store == nil {
		return
	}

	rec := m.slot.current()
	var replayID string
	if rec != nil {
		logData := rec.Finalize()
		if m.fileCfg.CompressReplays {
			logData = replay.Compress(logData)
		}
		if data, err := logData.Encode(); err == nil {
			if err := m.store.SaveReplay(logData.ID, m.player, m.engine.Config().Mode.String(), over.FinalScore, data); err == nil {
				replayID = logData.ID
			} else if m.logger != nil {
				m.logger.Warn("could not save replay", "error", err)
			}
		}
	}

	record := storage.GameRecord{
		Player:       m.player,
		Mode:         m.engine.Config().Mode.String(),
		Difficulty:   m.engine.Config().Difficulty.String(),
		Score:        over.FinalScore,
		Level:        over.FinalLevel,
		DurationSecs: int(time.Since(m.snap.StartedAt).Seconds()),
		Reason:       over.Reason.String(),
		ReplayID:     replayID,
	}
	if _, err := m.store.SaveRecord(record); err != nil && m.logger != nil {
		m.logger.Warn("could not save record", "error", err)
	}

	if err := m.store.UpsertLeaderboard(m.player, record.Mode, record.Score, record.Level); err != nil && m.logger != nil {
		m.logger.Warn("could not update leaderboard", "error", err)
	}

	if data, err := json.Marshal(m.fileCfg); err == nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveConfig(data)
	}
}

// View renders the board, HUD, and any overlay.
func (m *GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	now := time.Now()

	m.renderHUD(now)

	offsetX := (m.width - m.snap.Width) / 2
	offsetY := 3
	drawBoard(m.screen, m.snap, offsetX, offsetY, now)

	switch st := m.snap.State.(type) {
	case game.Paused:
		drawOverlay(m.screen, "Paused", "Press P to continue")
	case game.GameOver:
		drawOverlay(m.screen,
			fmt.Sprintf("Game Over (%s)", st.Reason),
			fmt.Sprintf("Score %d — R restart, Q quit", st.FinalScore))
	}

	return RenderScreen(m.screen)
}

// renderHUD draws the top status lines.
func (m *GameModel) renderHUD(now time.Time) {
	cfg := m.engine.Config()
	hud := fmt.Sprintf(" Snake [%s/%s] — Score: %d  Level: %d  Length: %d",
		cfg.Mode, cfg.Difficulty, m.snap.Score(), m.snap.Level(), m.snap.Snake.Len())

	if cfg.Mode == game.ModeTimeChallenge {
		left := cfg.TimeLimit - now.Sub(m.snap.StartedAt)
		if left < 0 {
			left = 0
		}
		hud += fmt.Sprintf("  Time: %ds", int(left.Seconds()))
	}

	m.screen.DrawText(0, 0, hud)
	if badges := effectBadges(m.snap.Effects, now); badges != "" {
		m.screen.DrawTextColored(1, 1, badges, ColorCyan)
	}
	for x := 0; x < m.width; x++ {
		m.screen.Set(x, 2, '─')
	}
}

// BackToMenu reports whether the user asked to return to the menu.
func (m *GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the user asked to quit entirely.
func (m *GameModel) IsQuitting() bool {
	return m.quitting
}

// RunGame starts a standalone Bubble Tea program for one game.
func RunGame(store *storage.Store, player string, fileCfg config.Config, gameCfg game.Config, width, height int, logger *log.Logger) error {
	model, err := NewGameModel(store, player, fileCfg, gameCfg, width, height, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	model.runner.Stop()
	return err
}
