package component

import "github.com/milk9111/bossfight/common"

type Transform struct {
	Position common.Vec2
	Facing   common.Facing
}

var TransformComponent = NewComponent[Transform]()
