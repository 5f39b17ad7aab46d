package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEncloses(t *testing.T) {
	outer := NewRect(0, 0, 20, 10)

	tests := []struct {
		name     string
		inner    Rect
		expected bool
	}{
		{"same rect", outer, true},
		{"strictly inside", NewRect(2, 2, 5, 5), true},
		{"too wide", NewRect(0, 0, 21, 5), false},
		{"too tall", NewRect(0, 5, 5, 6), false},
		{"negative origin", NewRect(-1, 0, 5, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := outer.Encloses(tc.inner); got != tc.expected {
				t.Errorf("Encloses(%+v) = %v, expected %v", tc.inner, got, tc.expected)
			}
		})
	}
}

func TestRectCenteredIn(t *testing.T) {
	r := NewRect(0, 0, 80, 24)
	got := r.CenteredIn(20, 10)

	if got != NewRect(30, 7, 20, 10) {
		t.Errorf("CenteredIn(20, 10) = %+v", got)
	}

	cx, cy := got.Center()
	if cx != 40 || cy != 12 {
		t.Errorf("Center() = (%d, %d), expected (40, 12)", cx, cy)
	}
}
