package combat

import "github.com/milk9111/bossfight/common"

// DefenderView is the read side of a defender's stance. CheckParry is the only
// call that mutates, and only on success.
type DefenderView interface {
	IsBlocking() bool
	CheckParry() bool
	DamageMultiplier() float64
}

// Damageable receives resolved damage.
type Damageable interface {
	TakeDamage(amount float64, knockbackDir common.Vec2) bool
}

// Positioned exposes a read-only world position.
type Positioned interface {
	Position() common.Vec2
}

// Counterable is notified when one of its attacks is parried.
type Counterable interface {
	OnCountered()
}

// Point is a fixed position.
type Point common.Vec2

func (p Point) Position() common.Vec2 { return common.Vec2(p) }
