package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qicun/SnakeGame/internal/replay"
)

// playbackStep is the scrubber's frame cadence.
const playbackStep = 100 * time.Millisecond

// seekStep is how far the arrow keys jump.
const seekStep = time.Second

// playbackTickMsg advances the playhead while playing.
type playbackTickMsg time.Time

// ReplayModel is the Bubble Tea playback scrubber. It drives
// Player.StateAt with a movable playhead: space toggles play/pause,
// the arrow keys seek.
type ReplayModel struct {
	player   *replay.Player
	screen   *Screen
	width    int
	height   int
	playhead time.Duration
	playing  bool
	quitting bool
}

// NewReplayModel creates a playback model for a validated log.
func NewReplayModel(p *replay.Player, width, height int) ReplayModel {
	return ReplayModel{
		player:  p,
		screen:  NewScreen(width, height),
		width:   width,
		height:  height,
		playing: true,
	}
}

// Init starts the playback ticker.
func (m ReplayModel) Init() tea.Cmd {
	return playbackTick()
}

func playbackTick() tea.Cmd {
	return tea.Tick(playbackStep, func(t time.Time) tea.Msg {
		return playbackTickMsg(t)
	})
}

// Update handles messages.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case playbackTickMsg:
		if m.playing {
			m.playhead += playbackStep
			if m.playhead >= m.player.Duration() {
				m.playhead = m.player.Duration()
				m.playing = false
			}
		}
		return m, playbackTick()
	}

	return m, nil
}

func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case " ":
		if !m.playing && m.playhead >= m.player.Duration() {
			m.playhead = 0 // replay from the start
		}
		m.playing = !m.playing
	case "left", "h":
		m.playhead -= seekStep
		if m.playhead < 0 {
			m.playhead = 0
		}
	case "right", "l":
		m.playhead += seekStep
		if m.playhead > m.player.Duration() {
			m.playhead = m.player.Duration()
		}
	case "home", "0":
		m.playhead = 0
	case "end":
		m.playhead = m.player.Duration()
	}
	return m, nil
}

// View renders the reconstructed state at the playhead.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()

	initial := m.player.Log().Initial
	state := m.player.StateAt(m.playhead)

	status := "playing"
	if !m.playing {
		status = "paused"
	}
	hud := fmt.Sprintf(" Replay [%s/%s] — Score: %d  Length: %d  %s",
		initial.Mode, initial.Difficulty, state.Score, state.Length, status)
	m.screen.DrawText(0, 0, hud)

	total := m.player.Duration()
	m.screen.DrawText(1, 1, fmt.Sprintf("%s / %s  %s",
		formatDuration(m.playhead), formatDuration(total), progressBar(m.playhead, total, 30)))
	for x := 0; x < m.width; x++ {
		m.screen.Set(x, 2, '─')
	}

	offsetX := (m.width - initial.Width) / 2
	offsetY := 3
	drawReplayBoard(m.screen, initial.Width, initial.Height,
		state.Body, state.Food, state.FoodType, initial.Obstacles, offsetX, offsetY)

	if state.Over {
		drawOverlay(m.screen,
			fmt.Sprintf("Game Over (%s)", state.Reason),
			fmt.Sprintf("Final score %d", state.Score))
	}

	return RenderScreen(m.screen)
}

// progressBar renders a fixed-width scrubber bar.
func progressBar(at, total time.Duration, width int) string {
	filled := 0
	if total > 0 {
		filled = int(int64(width) * int64(at) / int64(total))
	}
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// RunReplay starts a standalone playback program.
func RunReplay(p *replay.Player, width, height int) error {
	model := NewReplayModel(p, width, height)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
