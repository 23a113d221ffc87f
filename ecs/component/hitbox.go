package component

import (
	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
)

// Hitbox is an offensive box centered on the entity transform plus Offset.
// Offset.X is mirrored by the transform's facing.
type Hitbox struct {
	// Owner is the attacking combatant (player or boss).
	Owner   uint64
	Name    string
	Damage  float64
	Size    common.Vec2
	Offset  common.Vec2
	Faction combat.Faction
	Active  bool
	// Activation increments every time the box is switched on.
	Activation uint64
}

// Activate switches the box on as a new swing.
func (h *Hitbox) Activate() {
	if h == nil || h.Active {
		return
	}
	h.Active = true
	h.Activation++
}

func (h *Hitbox) Deactivate() {
	if h != nil {
		h.Active = false
	}
}

var HitboxComponent = NewComponent[Hitbox]()
