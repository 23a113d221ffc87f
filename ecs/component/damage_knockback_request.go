package component

import "github.com/milk9111/bossfight/common"

// DamageKnockback is a transient component asking the player controller to
// react to an accepted hit. Blocked hits push a short distance and keep the
// current action; unblocked hits cancel everything.
type DamageKnockback struct {
	Direction    common.Vec2
	Blocked      bool
	SourceEntity uint64
}

var DamageKnockbackRequestComponent = NewComponent[DamageKnockback]()
