package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// AttachSystem moves attached entities with their parent and removes the ones
// whose parent is gone.
type AttachSystem struct{}

func NewAttachSystem() *AttachSystem {
	return &AttachSystem{}
}

func (s *AttachSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.AttachedComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, at *component.Attached, tr *component.Transform) {
		parent := ecs.Entity(at.Parent)
		ptr, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
		if !ok {
			destroy(w, e)
			return
		}
		offset := at.Offset
		if at.Mirror {
			offset = offset.MirrorX(ptr.Facing.Sign() < 0)
		}
		tr.Position = ptr.Position.Add(offset)
		tr.Facing = ptr.Facing
	})
}
