package combat

import "testing"

func TestRecoveryGate(t *testing.T) {
	cases := []struct {
		name       string
		run        func(g *RecoveryGate) bool
		wantLocked bool
	}{
		{
			name:       "try_lock_when_free",
			run:        func(g *RecoveryGate) bool { return g.TryLock(0.3) },
			wantLocked: true,
		},
		{
			name: "try_lock_when_locked_fails",
			run: func(g *RecoveryGate) bool {
				g.TryLock(0.3)
				return !g.TryLock(1)
			},
			wantLocked: true,
		},
		{
			name: "force_lock_preempts",
			run: func(g *RecoveryGate) bool {
				g.TryLock(0.1)
				g.ForceLock(0.5)
				g.Tick(0.2)
				return g.Remaining() > 0.29
			},
			wantLocked: true,
		},
		{
			name: "countdown_unlocks",
			run: func(g *RecoveryGate) bool {
				g.TryLock(0.2)
				g.Tick(0.1)
				g.Tick(0.15)
				return g.Remaining() == 0
			},
			wantLocked: false,
		},
		{
			name: "release",
			run: func(g *RecoveryGate) bool {
				g.ForceLock(0.15)
				g.Release()
				return true
			},
			wantLocked: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := &RecoveryGate{}
			if !c.run(g) {
				t.Fatalf("scenario check failed")
			}
			if g.IsLocked() != c.wantLocked {
				t.Fatalf("IsLocked = %v, want %v", g.IsLocked(), c.wantLocked)
			}
		})
	}
}
