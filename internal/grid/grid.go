// Package grid provides the integer vector types the simulation is built
// on. It contains no external dependencies (especially no Bubble Tea) to
// keep game logic pure and testable.
package grid

// Position is a cell on the game grid. It is an immutable value type:
// all operations return a new Position.
type Position struct {
	X, Y int
}

// Direction is one of the four cardinal movement directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Move returns the neighboring position one cell away in the given
// direction. The grid origin is top-left, so Up decreases Y.
func (p Position) Move(d Direction) Position {
	switch d {
	case Up:
		return Position{X: p.X, Y: p.Y - 1}
	case Down:
		return Position{X: p.X, Y: p.Y + 1}
	case Left:
		return Position{X: p.X - 1, Y: p.Y}
	case Right:
		return Position{X: p.X + 1, Y: p.Y}
	default:
		return p
	}
}

// InBounds reports whether the position lies inside a width x height grid.
func (p Position) InBounds(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Wrap maps the position back onto a width x height grid, treating the
// edges as glued together (torus topology). Each axis wraps independently.
func (p Position) Wrap(width, height int) Position {
	x := ((p.X % width) + width) % width
	y := ((p.Y % height) + height) % height
	return Position{X: x, Y: y}
}

// Manhattan returns the L1 distance between two positions.
func (p Position) Manhattan(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// IsHorizontal reports whether the direction moves along the X axis.
func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

// IsVertical reports whether the direction moves along the Y axis.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name back to its value. It accepts
// the strings produced by String and reports ok=false for anything else.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return Up, false
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
