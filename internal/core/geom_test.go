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
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("New frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionHint)
	if !f.Has(ActionLeft) || !f.Has(ActionHint) {
		t.Error("Frame should contain the set actions")
	}
	if f.Has(ActionRight) {
		t.Error("Frame should not contain unset actions")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("Zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestInputFrameKeepsMoveOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionPause)
	f.Set(ActionLeft)
	f.Set(ActionRight)

	expected := []Action{ActionRight, ActionLeft, ActionRight}
	if len(f.Moves) != len(expected) {
		t.Fatalf("Moves = %v, expected %v", f.Moves, expected)
	}
	for i, a := range expected {
		if f.Moves[i] != a {
			t.Errorf("Moves[%d] = %v, expected %v", i, f.Moves[i], a)
		}
	}

	f.Clear()
	if len(f.Moves) != 0 {
		t.Errorf("Clear left %d moves", len(f.Moves))
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" {
		t.Errorf("ActionRight.String() = %q, expected Right", ActionRight.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}
