package combat

import "github.com/milk9111/bossfight/common"

// DamageEvent describes an accepted hit as seen by the damaged pool's hooks.
type DamageEvent struct {
	Amount    float64
	Knockback common.Vec2
	Remaining float64
}

// HealthPool is the HP of any combatant or destructible part.
type HealthPool struct {
	Max     float64
	Current float64
	// Floor is the lowest value a hit may reduce Current to. Dead is only
	// reachable when Floor is zero.
	Floor float64
	// InvulnerabilityDuration is started by every accepted hit.
	InvulnerabilityDuration float64
	Dead                    bool

	invulnerable float64

	OnDamage func(h *HealthPool, evt DamageEvent)
	OnDeath  func(h *HealthPool, evt DamageEvent)
}

func NewHealthPool(max, invulnerability float64) *HealthPool {
	if max <= 0 {
		max = 1
	}
	return &HealthPool{Max: max, Current: max, InvulnerabilityDuration: invulnerability}
}

func (h *HealthPool) IsAlive() bool {
	return h != nil && !h.Dead
}

func (h *HealthPool) IsInvulnerable() bool {
	return h != nil && h.invulnerable > 0
}

// TakeDamage applies amount unless the pool is dead or invulnerable. The
// knockback direction is handed to OnDamage; how far to push is the owner's
// decision.
func (h *HealthPool) TakeDamage(amount float64, knockbackDir common.Vec2) bool {
	if h == nil || h.Dead || h.invulnerable > 0 || amount < 0 {
		return false
	}
	h.Current -= amount
	if h.Current < h.Floor {
		h.Current = h.Floor
	}
	if h.Current < 0 {
		h.Current = 0
	}
	h.StartInvulnerability(h.InvulnerabilityDuration)

	evt := DamageEvent{Amount: amount, Knockback: knockbackDir, Remaining: h.Current}
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	if h.Current <= 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h, evt)
		}
	}
	return true
}

// Heal restores health up to Max. Dead pools stay dead.
func (h *HealthPool) Heal(amount float64) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// StartInvulnerability extends the invulnerability window to at least d.
func (h *HealthPool) StartInvulnerability(d float64) {
	if h == nil || d <= 0 {
		return
	}
	if d > h.invulnerable {
		h.invulnerable = d
	}
}

func (h *HealthPool) InvulnerableRemaining() float64 {
	if h == nil {
		return 0
	}
	return h.invulnerable
}

// Tick advances the invulnerability timer.
func (h *HealthPool) Tick(dt float64) {
	if h == nil || h.invulnerable <= 0 {
		return
	}
	h.invulnerable -= dt
	if h.invulnerable < 0 {
		h.invulnerable = 0
	}
}

func (h *HealthPool) Percent() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
