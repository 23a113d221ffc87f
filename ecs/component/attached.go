package component

import "github.com/milk9111/bossfight/common"

// Attached keeps an entity at Offset from Parent. With Mirror set the offset
// flips with the parent's facing.
type Attached struct {
	Parent uint64
	Offset common.Vec2
	Mirror bool
}

var AttachedComponent = NewComponent[Attached]()
