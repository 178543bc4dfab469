package game

import (
	"math/rand"
	"time"

	"github.com/qicun/SnakeGame/internal/grid"
)

// FoodType identifies what a food item does when eaten.
type FoodType int

const (
	FoodRegular FoodType = iota
	FoodBonus
	FoodSpeedUp
	FoodSpeedDown
	FoodGhost
	FoodShrink
)

// foodSpec holds the static per-type tuning: score value, spawn rarity
// weight, display color tag, and the effect the type instantiates.
// Weights are relative; selection normalizes over the candidate set.
type foodSpec struct {
	points int
	weight int
	color  string
	effect func() *Effect
}

var foodSpecs = map[FoodType]foodSpec{
	FoodRegular: {points: 10, weight: 60, color: "green"},
	FoodBonus:   {points: 30, weight: 15, color: "yellow"},
	FoodSpeedUp: {points: 15, weight: 8, color: "red",
		effect: func() *Effect { return &Effect{Kind: EffectSpeedUp, Duration: speedUpDuration} }},
	FoodSpeedDown: {points: 15, weight: 8, color: "blue",
		effect: func() *Effect { return &Effect{Kind: EffectSpeedDown, Duration: speedDownDuration} }},
	FoodGhost: {points: 20, weight: 5, color: "magenta",
		effect: func() *Effect { return &Effect{Kind: EffectGhost, Duration: ghostDuration} }},
	FoodShrink: {points: 5, weight: 4, color: "cyan",
		effect: func() *Effect { return &Effect{Kind: EffectShrink} }},
}

// Points returns the base score awarded for eating this type.
func (t FoodType) Points() int {
	return foodSpecs[t].points
}

// Weight returns the relative spawn rarity weight.
func (t FoodType) Weight() int {
	return foodSpecs[t].weight
}

// ColorTag returns the display color name for the type. The
// presentation layer maps tags to actual styles.
func (t FoodType) ColorTag() string {
	return foodSpecs[t].color
}

// String returns the type name.
func (t FoodType) String() string {
	switch t {
	case FoodRegular:
		return "regular"
	case FoodBonus:
		return "bonus"
	case FoodSpeedUp:
		return "speedup"
	case FoodSpeedDown:
		return "speeddown"
	case FoodGhost:
		return "ghost"
	case FoodShrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// ParseFoodType converts a type name back to its value.
func ParseFoodType(s string) (FoodType, bool) {
	for _, t := range []FoodType{FoodRegular, FoodBonus, FoodSpeedUp, FoodSpeedDown, FoodGhost, FoodShrink} {
		if t.String() == s {
			return t, true
		}
	}
	return FoodRegular, false
}

// Food is a spawned item on the grid. The effect is instantiated at
// spawn time but not activated: its StartedAt is stamped only when the
// food is eaten.
type Food struct {
	Pos       grid.Position
	Type      FoodType
	Effect    *Effect
	CreatedAt time.Time
}

// candidateTypes returns the food types eligible at the current score.
// New types unlock as the score rises so early games stay simple.
func candidateTypes(score int, enableEffects bool) []FoodType {
	if !enableEffects {
		return []FoodType{FoodRegular, FoodBonus}
	}
	switch {
	case score < 50:
		return []FoodType{FoodRegular, FoodBonus}
	case score < 150:
		return []FoodType{FoodRegular, FoodBonus, FoodSpeedUp, FoodSpeedDown}
	case score < 300:
		return []FoodType{FoodRegular, FoodBonus, FoodSpeedUp, FoodSpeedDown, FoodShrink}
	default:
		return []FoodType{FoodRegular, FoodBonus, FoodSpeedUp, FoodSpeedDown, FoodGhost, FoodShrink}
	}
}

// rollType draws a candidate type by cumulative weight.
func rollType(rng *rand.Rand, candidates []FoodType) FoodType {
	total := 0
	for _, t := range candidates {
		total += t.Weight()
	}
	if total <= 0 {
		return FoodRegular
	}
	draw := rng.Intn(total)
	acc := 0
	for _, t := range candidates {
		acc += t.Weight()
		if draw < acc {
			return t
		}
	}
	return candidates[len(candidates)-1]
}

// SpawnFood places a new food item on a free cell. The type is drawn
// by weight from the score-gated candidate set; the position is drawn
// uniformly among cells not in occupied. When no free cell exists the
// spawn degrades to a raster-scan fallback, or (0,0) if the grid is
// truly full, rather than failing the tick.
func SpawnFood(rng *rand.Rand, width, height int, occupied map[grid.Position]bool, enableEffects bool, score int, now time.Time) Food {
	typ := rollType(rng, candidateTypes(score, enableEffects))

	free := make([]grid.Position, 0, width*height-len(occupied))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := grid.Position{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	var pos grid.Position
	if len(free) > 0 {
		pos = free[rng.Intn(len(free))]
	}
	// Degenerate-state escape: free is empty, pos stays (0,0).

	var eff *Effect
	if enableEffects {
		if factory := foodSpecs[typ].effect; factory != nil {
			eff = factory()
		}
	}

	return Food{Pos: pos, Type: typ, Effect: eff, CreatedAt: now}
}
