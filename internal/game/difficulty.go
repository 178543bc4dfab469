package game

// Difficulty scales the game: a speed multiplier on the tick interval,
// a score multiplier on eaten food, and the initial snake length.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyExpert
)

type difficultySpec struct {
	speedFactor   float64
	scoreFactor   int
	initialLength int
}

var difficultySpecs = map[Difficulty]difficultySpec{
	DifficultyEasy:   {speedFactor: 1.25, scoreFactor: 1, initialLength: 3},
	DifficultyNormal: {speedFactor: 1.0, scoreFactor: 1, initialLength: 3},
	DifficultyHard:   {speedFactor: 0.8, scoreFactor: 2, initialLength: 4},
	DifficultyExpert: {speedFactor: 0.6, scoreFactor: 3, initialLength: 5},
}

// SpeedFactor returns the multiplier applied to the tick interval.
// Values below 1 make the game faster.
func (d Difficulty) SpeedFactor() float64 {
	return difficultySpecs[d].speedFactor
}

// InitialLength returns the starting snake length.
func (d Difficulty) InitialLength() int {
	return difficultySpecs[d].initialLength
}

// Score scales a food's base points by the difficulty multiplier.
func (d Difficulty) Score(points int) int {
	return points * difficultySpecs[d].scoreFactor
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	case DifficultyExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a difficulty name back to its value.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert} {
		if d.String() == s {
			return d, true
		}
	}
	return DifficultyNormal, false
}

// Difficulties lists all difficulties in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert}
}
