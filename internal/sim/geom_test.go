package sim

import "testing"

func TestCircleVsBoxVerticalHit(t *testing.T) {
	// Ball dropping onto the top face of a wide box.
	c := Circle{Center: Vec2{X: 5, Y: 1.6}, R: 0.5}
	b := NewBox(2, 2, 6, 2)

	h, ok := CircleVsBox(c, b)
	if !ok {
		t.Fatal("Expected overlap, got none")
	}
	if h.Normal.X != 0 || h.Normal.Y != -1 {
		t.Errorf("Expected upward normal, got (%v, %v)", h.Normal.X, h.Normal.Y)
	}
	// Penetration: radius + halfH - |dy| = 0.5 + 1 - 1.4 = 0.1
	if h.Depth < 0.099 || h.Depth > 0.101 {
		t.Errorf("Expected depth ~0.1, got %v", h.Depth)
	}
}

func TestCircleVsBoxHorizontalHit(t *testing.T) {
	// Ball pressing into the left face of a tall box.
	c := Circle{Center: Vec2{X: 1.7, Y: 5}, R: 0.5}
	b := NewBox(2, 2, 2, 6)

	h, ok := CircleVsBox(c, b)
	if !ok {
		t.Fatal("Expected overlap, got none")
	}
	if h.Normal.X != -1 || h.Normal.Y != 0 {
		t.Errorf("Expected leftward normal, got (%v, %v)", h.Normal.X, h.Normal.Y)
	}
}

func TestCircleVsBoxTangentIsNotAHit(t *testing.T) {
	// Circle exactly touching the left edge: zero penetration, no collision.
	b := NewBox(2, 2, 4, 4)
	c := Circle{Center: Vec2{X: 1.5, Y: 4}, R: 0.5}

	if _, ok := CircleVsBox(c, b); ok {
		t.Error("Tangent contact must not report a collision")
	}

	// One hair inside does collide.
	c.Center.X = 1.500001
	if _, ok := CircleVsBox(c, b); !ok {
		t.Error("Positive overlap must report a collision")
	}
}

func TestCircleVsBoxTieBreakFavorsHorizontal(t *testing.T) {
	// Square box, circle placed so both axis overlaps are exactly equal.
	b := NewBox(0, 0, 2, 2)
	c := Circle{Center: Vec2{X: 2.2, Y: 2.2}, R: 0.5}
	// overlapX = overlapY = 0.5 + 1 - 1.2 = 0.3

	h, ok := CircleVsBox(c, b)
	if !ok {
		t.Fatal("Expected overlap, got none")
	}
	if h.Normal.Y != 0 || h.Normal.X != 1 {
		t.Errorf("Equal overlaps must resolve on the horizontal axis, got (%v, %v)", h.Normal.X, h.Normal.Y)
	}
}

func TestBoxVsBoxPicksSmallerOverlap(t *testing.T) {
	// Thin projectile clipping the bottom of a brick: vertical overlap is
	// smaller, so the normal is vertical.
	brick := NewBox(10, 10, 4, 2)
	shot := NewBox(11, 11.8, 0.6, 1.2)

	h, ok := BoxVsBox(shot, brick)
	if !ok {
		t.Fatal("Expected overlap, got none")
	}
	if h.Normal.X != 0 || h.Normal.Y != 1 {
		t.Errorf("Expected downward normal, got (%v, %v)", h.Normal.X, h.Normal.Y)
	}
}

func TestBoxVsBoxEdgeContactIsNotAHit(t *testing.T) {
	a := NewBox(0, 0, 2, 2)
	b := NewBox(2, 0, 2, 2) // Shares the x=2 edge exactly

	if _, ok := BoxVsBox(a, b); ok {
		t.Error("Shared edge must not report a collision")
	}
}

func TestVecHelpers(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	if v.Len() != 5 {
		t.Errorf("Expected length 5, got %v", v.Len())
	}
	if d := v.DistSq(Vec2{}); d != 25 {
		t.Errorf("Expected squared distance 25, got %v", d)
	}
	if s := v.Scale(2); s.X != 6 || s.Y != 8 {
		t.Errorf("Scale broken: got (%v, %v)", s.X, s.Y)
	}
}

func TestBoxExpand(t *testing.T) {
	b := NewBox(2, 3, 4, 5).Expand(1)
	if b.X != 1 || b.Y != 2 || b.W != 6 || b.H != 7 {
		t.Errorf("Expand broken: got %+v", b)
	}
}
