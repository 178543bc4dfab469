// Package game implements the snake simulation: entities, timed food
// effects, game-mode strategies, and the tick engine that advances an
// immutable snapshot of the whole game state.
package game

import (
	"github.com/qicun/SnakeGame/internal/grid"
)

// Snake is the player's body on the grid, head first. It is a value
// type: Move returns a new Snake and never mutates the receiver, so a
// snapshot's snake can be shared freely with observers.
type Snake struct {
	Body []grid.Position
	Dir  grid.Direction
}

// NewSnake builds a snake of the given length with its head at start,
// facing dir. The body extends in the opposite direction so the first
// move is always legal.
func NewSnake(start grid.Position, dir grid.Direction, length int) Snake {
	if length < 1 {
		length = 1
	}
	body := make([]grid.Position, length)
	body[0] = start
	back := dir.Opposite()
	for i := 1; i < length; i++ {
		body[i] = body[i-1].Move(back)
	}
	return Snake{Body: body, Dir: dir}
}

// Head returns the head position (first body segment).
func (s Snake) Head() grid.Position {
	return s.Body[0]
}

// Len returns the body length.
func (s Snake) Len() int {
	return len(s.Body)
}

// Steer validates a requested direction change. Reversing into the own
// body is rejected and the current direction is kept; this is the sole
// input-validation rule for steering. A length-1 snake may turn freely.
func (s Snake) Steer(dir grid.Direction) grid.Direction {
	if len(s.Body) > 1 && dir == s.Dir.Opposite() {
		return s.Dir
	}
	return dir
}

// Move advances the snake one cell. The direction change goes through
// Steer first, so an opposite-direction request keeps the current
// heading. If grow is true the tail is kept and the body lengthens by
// one; otherwise the last segment is dropped.
func (s Snake) Move(dir grid.Direction, grow bool) Snake {
	actual := s.Steer(dir)
	newHead := s.Head().Move(actual)

	keep := len(s.Body)
	if !grow {
		keep--
	}
	body := make([]grid.Position, 0, keep+1)
	body = append(body, newHead)
	body = append(body, s.Body[:keep]...)
	return Snake{Body: body, Dir: actual}
}

// WrapHead maps the head back onto the grid, torus-style. Used by the
// borderless mode and by ghost pass-through so the in-bounds invariant
// holds after crossing an edge.
func (s Snake) WrapHead(width, height int) Snake {
	wrapped := s.Head().Wrap(width, height)
	if wrapped == s.Head() {
		return s
	}
	body := make([]grid.Position, len(s.Body))
	copy(body, s.Body)
	body[0] = wrapped
	return Snake{Body: body, Dir: s.Dir}
}

// DropTail removes the last body segment. Used by the shrink food;
// callers guard the minimum length.
func (s Snake) DropTail() Snake {
	if len(s.Body) <= 1 {
		return s
	}
	body := make([]grid.Position, len(s.Body)-1)
	copy(body, s.Body[:len(s.Body)-1])
	return Snake{Body: body, Dir: s.Dir}
}

// SelfCollision reports whether the head overlaps any other segment.
// A snake of length 1 can never collide with itself.
func (s Snake) SelfCollision() bool {
	head := s.Head()
	for _, seg := range s.Body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// WallCollision reports whether the head left the grid.
func (s Snake) WallCollision(width, height int) bool {
	return !s.Head().InBounds(width, height)
}

// Occupies reports whether any body segment sits on the given cell.
func (s Snake) Occupies(p grid.Position) bool {
	for _, seg := range s.Body {
		if seg == p {
			return true
		}
	}
	return false
}
