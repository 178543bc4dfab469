package game

import (
	"math/rand"

	"github.com/qicun/SnakeGame/internal/grid"
)

// Mode selects the rule variant for a game.
type Mode int

const (
	ModeClassic Mode = iota
	ModeBorderless
	ModeObstacles
	ModeTimeChallenge
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeBorderless:
		return "borderless"
	case ModeObstacles:
		return "obstacles"
	case ModeTimeChallenge:
		return "timed"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back to its value.
func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{ModeClassic, ModeBorderless, ModeObstacles, ModeTimeChallenge} {
		if m.String() == s {
			return m, true
		}
	}
	return ModeClassic, false
}

// Modes lists all selectable modes in display order.
func Modes() []Mode {
	return []Mode{ModeClassic, ModeBorderless, ModeObstacles, ModeTimeChallenge}
}

// Strategy is the capability interface a mode implements. The engine
// selects one implementation at initialization from the config mode
// and never rebinds it mid-game. Obstacle collision is the engine's
// job, not the strategy's.
type Strategy interface {
	// HandleMovement advances the snake one cell under this mode's
	// movement rules.
	HandleMovement(s Snake, dir grid.Direction, width, height int, grow bool) Snake

	// BoundaryCollision reports whether the snake's head position
	// counts as a boundary hit under this mode.
	BoundaryCollision(s Snake, width, height int) bool

	// GenerateObstacles produces this mode's obstacle set, avoiding
	// occupied cells.
	GenerateObstacles(rng *rand.Rand, width, height int, occupied map[grid.Position]bool, maxCount int) map[grid.Position]bool

	// SupportsTimeLimit reports whether the engine should enforce the
	// configured time limit.
	SupportsTimeLimit() bool
}

// StrategyFor maps a mode to its strategy implementation.
func StrategyFor(m Mode) Strategy {
	switch m {
	case ModeBorderless:
		return borderlessStrategy{}
	case ModeObstacles:
		return obstaclesStrategy{}
	case ModeTimeChallenge:
		return timeChallengeStrategy{}
	default:
		return classicStrategy{}
	}
}

// classicStrategy is the standard rule set: hard walls, no obstacles,
// no time limit.
type classicStrategy struct{}

func (classicStrategy) HandleMovement(s Snake, dir grid.Direction, width, height int, grow bool) Snake {
	return s.Move(dir, grow)
}

func (classicStrategy) BoundaryCollision(s Snake, width, height int) bool {
	return s.WallCollision(width, height)
}

func (classicStrategy) GenerateObstacles(rng *rand.Rand, width, height int, occupied map[grid.Position]bool, maxCount int) map[grid.Position]bool {
	return nil
}

func (classicStrategy) SupportsTimeLimit() bool { return false }

// borderlessStrategy wraps the head across grid edges and never
// reports a boundary collision.
type borderlessStrategy struct{}

func (borderlessStrategy) HandleMovement(s Snake, dir grid.Direction, width, height int, grow bool) Snake {
	return s.Move(dir, grow).WrapHead(width, height)
}

func (borderlessStrategy) BoundaryCollision(s Snake, width, height int) bool {
	return false
}

func (borderlessStrategy) GenerateObstacles(rng *rand.Rand, width, height int, occupied map[grid.Position]bool, maxCount int) map[grid.Position]bool {
	return nil
}

func (borderlessStrategy) SupportsTimeLimit() bool { return false }

// obstaclesStrategy is classic movement plus randomly placed walls.
type obstaclesStrategy struct{}

func (obstaclesStrategy) HandleMovement(s Snake, dir grid.Direction, width, height int, grow bool) Snake {
	return s.Move(dir, grow)
}

func (obstaclesStrategy) BoundaryCollision(s Snake, width, height int) bool {
	return s.WallCollision(width, height)
}

// GenerateObstacles samples min(maxCount, free) distinct free cells
// without replacement.
func (obstaclesStrategy) GenerateObstacles(rng *rand.Rand, width, height int, occupied map[grid.Position]bool, maxCount int) map[grid.Position]bool {
	free := make([]grid.Position, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := grid.Position{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	count := maxCount
	if count > len(free) {
		count = len(free)
	}

	obstacles := make(map[grid.Position]bool, count)
	for i := 0; i < count; i++ {
		j := rng.Intn(len(free))
		obstacles[free[j]] = true
		free[j] = free[len(free)-1]
		free = free[:len(free)-1]
	}
	return obstacles
}

func (obstaclesStrategy) SupportsTimeLimit() bool { return false }

// timeChallengeStrategy is classic movement with a countdown enforced
// by the engine.
type timeChallengeStrategy struct{}

func (timeChallengeStrategy) HandleMovement(s Snake, dir grid.Direction, width, height int, grow bool) Snake {
	return s.Move(dir, grow)
}

func (timeChallengeStrategy) BoundaryCollision(s Snake, width, height int) bool {
	return s.WallCollision(width, height)
}

func (timeChallengeStrategy) GenerateObstacles(rng *rand.Rand, width, height int, occupied map[grid.Position]bool, maxCount int) map[grid.Position]bool {
	return nil
}

func (timeChallengeStrategy) SupportsTimeLimit() bool { return true }
