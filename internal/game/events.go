package game

import "github.com/qicun/SnakeGame/internal/grid"

// Event is the sealed set of engine-observable changes a tick can
// produce. The replay recorder consumes them; the presentation layer
// may use them for feedback.
type Event interface {
	isEvent()
}

// Moved reports the snake's movement for a tick.
type Moved struct {
	Head grid.Position
	Dir  grid.Direction
	Ate  bool
}

// FoodEaten reports a consumed food item and the resulting totals.
type FoodEaten struct {
	Pos    grid.Position
	Type   FoodType
	Points int
	Score  int
	Length int
}

// FoodSpawned reports a newly placed food item.
type FoodSpawned struct {
	Pos  grid.Position
	Type FoodType
}

// Ended reports the game-over transition.
type Ended struct {
	Reason EndReason
	Score  int
	Level  int
}

func (Moved) isEvent()       {}
func (FoodEaten) isEvent()   {}
func (FoodSpawned) isEvent() {}
func (Ended) isEvent()       {}
