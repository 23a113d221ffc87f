package component

import (
	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
)

// Hurtbox is a defensive box. The entity carrying it must also carry a
// combat.HealthPool.
type Hurtbox struct {
	Size    common.Vec2
	Offset  common.Vec2
	Faction combat.Faction
	Enabled bool
}

var HurtboxComponent = NewComponent[Hurtbox]()
