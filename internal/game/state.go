package game

// State is the sealed game-state sum type: Playing, Paused, or
// GameOver. The variants are value structs; exhaustive type switches
// replace runtime flag checks.
type State interface {
	isState()
}

// Playing is the live state with the running score, level, and the
// level-derived base speed in milliseconds per tick.
type Playing struct {
	Score int
	Level int
	Speed int
}

// Paused wraps the Playing state it suspended, preserved verbatim so
// resuming restores exactly where the game left off.
type Paused struct {
	Prior Playing
}

// GameOver is terminal until a reset creates a fresh snapshot.
type GameOver struct {
	FinalScore int
	FinalLevel int
	Reason     EndReason
}

func (Playing) isState()  {}
func (Paused) isState()   {}
func (GameOver) isState() {}

// Base speed progression: every level shaves 50ms off the tick
// interval, floored at 100ms.
const (
	baseLevelSpeed = 500
	minLevelSpeed  = 100
	speedPerLevel  = 50
	pointsPerLevel = 100
)

// AddScore awards points and recomputes the level and the
// level-derived speed. Points are never negative, so score and level
// are monotonic.
func (p Playing) AddScore(points int) Playing {
	p.Score += points
	p.Level = p.Score/pointsPerLevel + 1
	p.Speed = baseLevelSpeed - (p.Level-1)*speedPerLevel
	if p.Speed < minLevelSpeed {
		p.Speed = minLevelSpeed
	}
	return p
}

// EndReason says why a game ended.
type EndReason int

const (
	ReasonWallHit EndReason = iota
	ReasonSelfHit
	ReasonObstacleHit
	ReasonTimeUp
)

// String returns the reason name.
func (r EndReason) String() string {
	switch r {
	case ReasonWallHit:
		return "wall"
	case ReasonSelfHit:
		return "self"
	case ReasonObstacleHit:
		return "obstacle"
	case ReasonTimeUp:
		return "timeup"
	default:
		return "unknown"
	}
}

// ParseEndReason converts a reason name back to its value.
func ParseEndReason(s string) (EndReason, bool) {
	for _, r := range []EndReason{ReasonWallHit, ReasonSelfHit, ReasonObstacleHit, ReasonTimeUp} {
		if r.String() == s {
			return r, true
		}
	}
	return ReasonWallHit, false
}
