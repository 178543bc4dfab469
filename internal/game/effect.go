package game

import "time"

// EffectKind identifies a timed food effect.
type EffectKind int

const (
	EffectSpeedUp EffectKind = iota
	EffectSpeedDown
	EffectGhost
	EffectShrink
)

// Default effect durations. Shrink is an instant one-shot; it carries
// no duration and is expired as soon as it is applied.
const (
	speedUpDuration   = 5 * time.Second
	speedDownDuration = 5 * time.Second
	ghostDuration     = 8 * time.Second
)

// String returns a short display name for the effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectSpeedUp:
		return "speedup"
	case EffectSpeedDown:
		return "speeddown"
	case EffectGhost:
		return "ghost"
	case EffectShrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// Effect is a modifier attached to a food item. Its StartedAt stays
// zero from spawn until the food is eaten; activation stamps it.
type Effect struct {
	Kind      EffectKind
	Duration  time.Duration
	StartedAt time.Time
}

// Expired reports whether the effect has run its course at the given
// instant. Instant effects (zero duration) are always expired.
func (e Effect) Expired(now time.Time) bool {
	if e.Duration <= 0 {
		return true
	}
	return now.Sub(e.StartedAt) >= e.Duration
}

// Remaining returns how long the effect stays active after now.
func (e Effect) Remaining(now time.Time) time.Duration {
	left := e.Duration - now.Sub(e.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Modifier is the combined result of folding all active effects for
// one tick: the adjusted speed and the pass-through permissions. It is
// consumed by the engine for that tick only; effects never touch the
// snake or food directly.
type Modifier struct {
	Speed     int // tick interval in milliseconds
	PassWalls bool
	PassSelf  bool
}

// apply transforms the running modifier. Each effect rereads the
// current running speed, so two speed effects compose multiplicatively
// and their order matters. That order dependence is intentional.
func (e Effect) apply(m Modifier) Modifier {
	switch e.Kind {
	case EffectSpeedUp:
		m.Speed = m.Speed * 2 / 3
	case EffectSpeedDown:
		m.Speed = m.Speed * 3 / 2
	case EffectGhost:
		m.PassWalls = true
		m.PassSelf = true
	}
	if m.Speed < 50 {
		m.Speed = 50
	}
	return m
}

// EffectSet is the ordered list of active effects threaded through the
// snapshot. It is treated as an immutable value: Add and Apply return
// new sets instead of mutating in place.
type EffectSet []Effect

// Add activates an effect at the given instant. Any active effect of
// the same kind is replaced rather than stacked, so eating a second
// speed-up only refreshes the timer.
func (s EffectSet) Add(e Effect, now time.Time) EffectSet {
	e.StartedAt = now
	out := make(EffectSet, 0, len(s)+1)
	for _, active := range s {
		if active.Kind != e.Kind {
			out = append(out, active)
		}
	}
	return append(out, e)
}

// Apply evicts expired effects and folds the survivors, in insertion
// order, over a modifier starting at (baseSpeed, no pass-through). It
// returns the combined modifier and the surviving set.
func (s EffectSet) Apply(baseSpeed int, now time.Time) (Modifier, EffectSet) {
	mod := Modifier{Speed: baseSpeed}
	var alive EffectSet
	for _, e := range s {
		if e.Expired(now) {
			continue
		}
		alive = append(alive, e)
		mod = e.apply(mod)
	}
	return mod, alive
}
