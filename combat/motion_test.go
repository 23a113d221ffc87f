package combat

import (
	"testing"

	"github.com/milk9111/bossfight/common"
)

func TestMotionEasesAndFinishes(t *testing.T) {
	var m Motion
	m.StartDistance(common.V(3, 4), 8, 0.3)

	const dt = 1.0 / 60.0
	prev := m.Speed + 1
	ticks := 0
	for m.Active {
		v, finished := m.Advance(dt)
		ticks++
		if finished {
			if !v.IsZero() {
				t.Fatalf("final velocity should be zero, got %v", v)
			}
			break
		}
		if v.Len() > prev {
			t.Fatalf("speed increased at tick %d", ticks)
		}
		prev = v.Len()
	}
	if ticks != 18 {
		t.Fatalf("expected 18 ticks for 0.3s, got %d", ticks)
	}
}
