package grid

import "testing"

func TestPositionMove(t *testing.T) {
	tests := []struct {
		name     string
		start    Position
		dir      Direction
		expected Position
	}{
		{
			name:     "up decreases y",
			start:    Position{X: 5, Y: 5},
			dir:      Up,
			expected: Position{X: 5, Y: 4},
		},
		{
			name:     "down increases y",
			start:    Position{X: 5, Y: 5},
			dir:      Down,
			expected: Position{X: 5, Y: 6},
		},
		{
			name:     "left decreases x",
			start:    Position{X: 5, Y: 5},
			dir:      Left,
			expected: Position{X: 4, Y: 5},
		},
		{
			name:     "right increases x",
			start:    Position{X: 5, Y: 5},
			dir:      Right,
			expected: Position{X: 6, Y: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Move(tt.dir)
			if got != tt.expected {
				t.Errorf("Move(%v) = %v, want %v", tt.dir, got, tt.expected)
			}
			// The receiver must be unchanged (value semantics)
			if tt.start.X != 5 || tt.start.Y != 5 {
				t.Errorf("Move mutated receiver: %v", tt.start)
			}
		})
	}
}

func TestPositionInBounds(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"origin", Position{0, 0}, true},
		{"interior", Position{10, 5}, true},
		{"right edge inside", Position{19, 0}, true},
		{"bottom edge inside", Position{0, 9}, true},
		{"x too large", Position{20, 0}, false},
		{"y too large", Position{0, 10}, false},
		{"negative x", Position{-1, 5}, false},
		{"negative y", Position{5, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.InBounds(20, 10); got != tt.expected {
				t.Errorf("InBounds(20, 10) for %v = %v, want %v", tt.pos, got, tt.expected)
			}
		})
	}
}

func TestPositionWrap(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected Position
	}{
		{"in range unchanged", Position{3, 4}, Position{3, 4}},
		{"x past right wraps to zero", Position{20, 4}, Position{0, 4}},
		{"x negative wraps to last column", Position{-1, 4}, Position{19, 4}},
		{"y past bottom wraps to zero", Position{3, 10}, Position{3, 0}},
		{"y negative wraps to last row", Position{3, -1}, Position{3, 9}},
		{"both axes wrap independently", Position{-1, 10}, Position{19, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.Wrap(20, 10); got != tt.expected {
				t.Errorf("Wrap(20, 10) for %v = %v, want %v", tt.pos, got, tt.expected)
			}
		})
	}
}

func TestManhattan(t *testing.T) {
	a := Position{X: 2, Y: 3}
	b := Position{X: 7, Y: 1}

	if got := a.Manhattan(b); got != 7 {
		t.Errorf("Manhattan(%v, %v) = %d, want 7", a, b, got)
	}
	if got := b.Manhattan(a); got != 7 {
		t.Errorf("Manhattan should be symmetric, got %d", got)
	}
	if got := a.Manhattan(a); got != 0 {
		t.Errorf("Manhattan to self = %d, want 0", got)
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		Up:    Down,
		Down:  Up,
		Left:  Right,
		Right: Left,
	}

	for dir, want := range pairs {
		if got := dir.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", dir, got, want)
		}
		if got := dir.Opposite().Opposite(); got != dir {
			t.Errorf("double Opposite of %v = %v, want identity", dir, got)
		}
	}
}

func TestDirectionAxes(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if d.IsHorizontal() == d.IsVertical() {
			t.Errorf("%v must be exactly one of horizontal/vertical", d)
		}
	}
	if !Left.IsHorizontal() || !Right.IsHorizontal() {
		t.Error("Left and Right should be horizontal")
	}
	if !Up.IsVertical() || !Down.IsVertical() {
		t.Error("Up and Down should be vertical")
	}
}

func TestParseDirectionRoundTrip(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		parsed, ok := ParseDirection(d.String())
		if !ok {
			t.Errorf("ParseDirection(%q) not ok", d.String())
		}
		if parsed != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.String(), parsed, d)
		}
	}

	if _, ok := ParseDirection("diagonal"); ok {
		t.Error("ParseDirection should reject unknown names")
	}
}
