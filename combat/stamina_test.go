package combat

import (
	"math"
	"testing"
)

func TestStaminaTryConsume(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		amount  float64
		want    bool
		after   float64
	}{
		{"exact", 20, 20, true, 0},
		{"plenty", 100, 20, true, 80},
		{"insufficient", 10, 20, false, 10},
		{"zero", 5, 0, true, 5},
		{"negative", 50, -5, false, 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStaminaPool(100, 15, 0.5)
			s.Current = c.current
			if got := s.TryConsume(c.amount); got != c.want {
				t.Fatalf("TryConsume(%v) = %v, want %v", c.amount, got, c.want)
			}
			if s.Current != c.after {
				t.Fatalf("current = %v, want %v", s.Current, c.after)
			}
			if s.Current < 0 {
				t.Fatalf("stamina went negative: %v", s.Current)
			}
		})
	}
}

func TestStaminaRegen(t *testing.T) {
	const dt = 1.0 / 60.0
	cases := []struct {
		name    string
		initial float64
		ticks   int
	}{
		{"partial", 40, 60},
		{"caps_at_max", 95, 120},
		{"already_full", 100, 30},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStaminaPool(100, 15, 0.5)
			s.Current = c.initial
			for i := 0; i < c.ticks; i++ {
				s.Tick(dt)
			}
			want := math.Min(100, c.initial+15*float64(c.ticks)*dt)
			if math.Abs(s.Current-want) > 1e-9 {
				t.Fatalf("current = %v, want %v", s.Current, want)
			}
		})
	}
}

func TestStaminaRegenWaitsForDelay(t *testing.T) {
	s := NewStaminaPool(100, 10, 0.5)
	if !s.TryConsume(50) {
		t.Fatal("consume failed")
	}
	s.Tick(0.25)
	if s.Current != 50 {
		t.Fatalf("regen started early: %v", s.Current)
	}
	s.Tick(0.25)
	if s.Current <= 50 {
		t.Fatalf("regen did not start after delay: %v", s.Current)
	}
}

func TestStaminaRefundClamps(t *testing.T) {
	s := NewStaminaPool(100, 0, 0)
	s.Current = 98
	s.Refund(5)
	if s.Current != 100 {
		t.Fatalf("refund should clamp to max, got %v", s.Current)
	}
}
