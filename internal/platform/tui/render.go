package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/qicun/SnakeGame/internal/game"
	"github.com/qicun/SnakeGame/internal/grid"
)

// colorStyles maps Color to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault:      lipgloss.NewStyle(),
	ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// foodColors maps the simulation's color tags to screen colors.
var foodColors = map[string]Color{
	"green":   ColorBrightGreen,
	"yellow":  ColorBrightYellow,
	"red":     ColorRed,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// boardGlyphs for the playfield.
const (
	glyphHead     = 'O'
	glyphBody     = 'o'
	glyphFood     = '*'
	glyphObstacle = '#'
	glyphBorder   = '·'
)

// drawBoard renders a snapshot's playfield onto the screen at the
// given offset. The snake dims to gray while a ghost effect is active.
func drawBoard(dst *Screen, snap game.Snapshot, offsetX, offsetY int, now time.Time) {
	// Border hints the playfield edge; borderless mode gets dots to
	// signal the wrap.
	for x := -1; x <= snap.Width; x++ {
		dst.SetColored(offsetX+x, offsetY-1, glyphBorder, ColorGray)
		dst.SetColored(offsetX+x, offsetY+snap.Height, glyphBorder, ColorGray)
	}
	for y := 0; y < snap.Height; y++ {
		dst.SetColored(offsetX-1, offsetY+y, glyphBorder, ColorGray)
		dst.SetColored(offsetX+snap.Width, offsetY+y, glyphBorder, ColorGray)
	}

	for p := range snap.Obstacles {
		dst.SetColored(offsetX+p.X, offsetY+p.Y, glyphObstacle, ColorGray)
	}

	foodColor, ok := foodColors[snap.Food.Type.ColorTag()]
	if !ok {
		foodColor = ColorWhite
	}
	dst.SetColored(offsetX+snap.Food.Pos.X, offsetY+snap.Food.Pos.Y, glyphFood, foodColor)

	snakeColor := ColorGreen
	headColor := ColorBrightGreen
	if ghostActive(snap.Effects, now) {
		snakeColor = ColorGray
		headColor = ColorGray
	}
	for i, seg := range snap.Snake.Body {
		glyph := glyphBody
		color := snakeColor
		if i == 0 {
			glyph = glyphHead
			color = headColor
		}
		dst.SetColored(offsetX+seg.X, offsetY+seg.Y, glyph, color)
	}
}

// ghostActive reports whether a ghost effect is live.
func ghostActive(effects game.EffectSet, now time.Time) bool {
	for _, e := range effects {
		if e.Kind == game.EffectGhost && !e.Expired(now) {
			return true
		}
	}
	return false
}

// effectBadges formats active effect timers for the HUD.
func effectBadges(effects game.EffectSet, now time.Time) string {
	var parts []string
	for _, e := range effects {
		if e.Expired(now) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.0fs", e.Kind, e.Remaining(now).Seconds()))
	}
	return strings.Join(parts, "  ")
}

// drawReplayBoard renders a reconstructed replay state onto the
// screen: the recorded body, food, and the initial obstacles.
func drawReplayBoard(dst *Screen, width, height int, body []grid.Position, food *grid.Position, foodType string, obstacles []grid.Position, offsetX, offsetY int) {
	for x := -1; x <= width; x++ {
		dst.SetColored(offsetX+x, offsetY-1, glyphBorder, ColorGray)
		dst.SetColored(offsetX+x, offsetY+height, glyphBorder, ColorGray)
	}
	for y := 0; y < height; y++ {
		dst.SetColored(offsetX-1, offsetY+y, glyphBorder, ColorGray)
		dst.SetColored(offsetX+width, offsetY+y, glyphBorder, ColorGray)
	}

	for _, p := range obstacles {
		dst.SetColored(offsetX+p.X, offsetY+p.Y, glyphObstacle, ColorGray)
	}

	if food != nil {
		color := ColorWhite
		if t, ok := game.ParseFoodType(foodType); ok {
			if c, found := foodColors[t.ColorTag()]; found {
				color = c
			}
		}
		dst.SetColored(offsetX+food.X, offsetY+food.Y, glyphFood, color)
	}

	for i, seg := range body {
		glyph := glyphBody
		color := ColorGreen
		if i == 0 {
			glyph = glyphHead
			color = ColorBrightGreen
		}
		dst.SetColored(offsetX+seg.X, offsetY+seg.Y, glyph, color)
	}
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH && y < h; y++ {
		for x := boxX; x < boxX+boxW && x < w; x++ {
			if x < 0 || y < 0 {
				continue
			}
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.Set(x, y, '+')
			case isTopOrBottom:
				dst.Set(x, y, '-')
			case isLeftOrRight:
				dst.Set(x, y, '|')
			default:
				dst.Set(x, y, ' ')
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// centerText centers a single line of text within the given width.
func centerText(text string, width int) string {
	pad := (width - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}
