package component

import "github.com/milk9111/bossfight/combat"

var (
	HealthComponent   = NewComponent[combat.HealthPool]()
	StaminaComponent  = NewComponent[combat.StaminaPool]()
	RecoveryComponent = NewComponent[combat.RecoveryGate]()
	StanceComponent   = NewComponent[combat.BlockParryState]()
	StaggerComponent  = NewComponent[combat.StaggerMeter]()
)
