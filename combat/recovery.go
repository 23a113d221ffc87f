package combat

// RecoveryGate is a single-slot lockout. Every accepted player action locks it
// for that action's recovery time; being hit force-locks it for hitstun.
type RecoveryGate struct {
	remaining float64
	locked    bool
}

// TryLock starts a countdown unless one is already running.
func (g *RecoveryGate) TryLock(duration float64) bool {
	if g == nil || g.locked {
		return false
	}
	g.remaining = max(duration, 0)
	g.locked = true
	return true
}

// ForceLock (re)starts the countdown regardless of the current lock.
func (g *RecoveryGate) ForceLock(duration float64) {
	if g == nil {
		return
	}
	g.remaining = max(duration, 0)
	g.locked = true
}

// Release drops the lock immediately.
func (g *RecoveryGate) Release() {
	if g == nil {
		return
	}
	g.remaining = 0
	g.locked = false
}

func (g *RecoveryGate) IsLocked() bool {
	return g != nil && g.locked
}

func (g *RecoveryGate) Remaining() float64 {
	if g == nil || !g.locked {
		return 0
	}
	return g.remaining
}

// Percent is the lock progress against the longest recovery the caller knows
// of: 0 when unlocked or just started, approaching 1 as it runs out.
func (g *RecoveryGate) Percent(maxRecovery float64) float64 {
	if g == nil || !g.locked || maxRecovery <= 0 {
		return 0
	}
	p := 1 - g.remaining/maxRecovery
	if p < 0 {
		return 0
	}
	return p
}

func (g *RecoveryGate) Tick(dt float64) {
	if g == nil || !g.locked {
		return
	}
	g.remaining -= dt
	if g.remaining <= 0 {
		g.remaining = 0
		g.locked = false
	}
}
