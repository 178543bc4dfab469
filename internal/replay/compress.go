package replay

// Compress collapses consecutive Move actions that share the same
// direction into the run's first action, keeping only direction
// changes. Non-Move actions break a run and are never dropped, so
// state at eat-food and game-over boundaries stays exact; between kept
// moves playback holds the last recorded body.
func Compress(l Log) Log {
	if len(l.Actions) == 0 {
		return l
	}

	out := make(Actions, 0, len(l.Actions))
	var run *Move

	for _, a := range l.Actions {
		move, ok := a.(Move)
		if !ok {
			run = nil
			out = append(out, a)
			continue
		}
		if run != nil && run.Dir == move.Dir {
			continue
		}
		out = append(out, move)
		run = &move
	}

	l.Actions = out
	return l
}
