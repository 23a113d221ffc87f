package component

import "github.com/milk9111/bossfight/common"

type Projectile struct {
	Origin      common.Vec2
	Direction   common.Vec2
	Speed       float64
	MaxDistance float64
}

var ProjectileComponent = NewComponent[Projectile]()
