package common

import (
	"math"
	"testing"
)

func TestEaseOutQuad(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"start", 0, 1},
		{"half", 0.5, 0.75},
		{"end", 1, 0},
		{"clamped_low", -1, 1},
		{"clamped_high", 2, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := EaseOutQuad(c.in); !ApproxEqual(got, c.want, 1e-12) {
				t.Fatalf("EaseOutQuad(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestElapsedAbsorbsFixedStepDrift(t *testing.T) {
	timer := 0.0
	ticks := 0
	for !Elapsed(timer, 3) {
		timer += 1.0 / 60.0
		ticks++
	}
	if ticks != 180 {
		t.Fatalf("expected 180 ticks of 1/60s to reach 3s, got %d", ticks)
	}
}

func TestVecNormalizeAndMove(t *testing.T) {
	n := V(3, 4).Normalize()
	if !ApproxEqual(n.Len(), 1, 1e-12) || !ApproxEqual(n.X, 0.6, 1e-12) {
		t.Fatalf("unexpected normalize result %v", n)
	}
	if !Zero.Normalize().IsZero() {
		t.Fatalf("normalizing zero must stay zero")
	}

	p := V(0, 0).MoveTowards(V(10, 0), 4)
	if p != V(4, 0) {
		t.Fatalf("expected (4,0), got %v", p)
	}
	p = V(9, 0).MoveTowards(V(10, 0), 4)
	if p != V(10, 0) {
		t.Fatalf("MoveTowards must not overshoot, got %v", p)
	}
}

func TestRectIntersectsAndClamp(t *testing.T) {
	a := RectAround(V(0, 0), V(2, 2))
	b := RectAround(V(1.5, 0), V(2, 2))
	c := RectAround(V(5, 0), V(2, 2))
	if !a.Intersects(b) {
		t.Fatalf("expected overlap")
	}
	if a.Intersects(c) {
		t.Fatalf("expected no overlap")
	}
	bounds := Rect{X: -10, Y: -5, Width: 20, Height: 10}
	if got := bounds.ClampPoint(V(50, math.Inf(-1))); got != V(10, -5) {
		t.Fatalf("unexpected clamp %v", got)
	}
}

func TestFacingToward(t *testing.T) {
	if FacingToward(V(0, 0), V(-1, 0)) != FacingLeft {
		t.Fatalf("expected left")
	}
	if FacingToward(V(0, 0), V(0, 3)) != FacingRight {
		t.Fatalf("ties face right")
	}
}
