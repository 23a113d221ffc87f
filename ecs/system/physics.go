package system

import (
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// PhysicsSystem mirrors hitboxes and hurtboxes into the collision world,
// steps it, and queues the reported overlaps for the combat system. It also
// consumes the destroyed-entity events of the previous tick.
type PhysicsSystem struct {
	World *ecs.PhysicsWorld
	// Source reports overlaps. It defaults to World; tests and external
	// engines add their own.
	Source ecs.OverlapSource
}

func NewPhysicsSystem(world *ecs.PhysicsWorld, source ecs.OverlapSource) *PhysicsSystem {
	if source == nil {
		source = world
	}
	return &PhysicsSystem{World: world, Source: source}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	// Shapes of entities destroyed since the last tick leave the space.
	for _, evt := range w.Events().DrainType(ecs.EventDestroyed) {
		s.World.Remove(evt.Entity)
	}

	if s.World != nil {
		ecs.ForEach2(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hb *component.Hitbox, tr *component.Transform) {
			s.World.Sync(e, ecs.RoleHitbox, boxRect(tr, hb.Offset, hb.Size), hb.Active)
		})
		ecs.ForEach2(w, component.HurtboxComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hurt *component.Hurtbox, tr *component.Transform) {
			enabled := hurt.Enabled
			if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
				enabled = false
			}
			s.World.Sync(e, ecs.RoleHurtbox, boxRect(tr, hurt.Offset, hurt.Size), enabled)
		})
		s.World.Step(w.Dt)
	}

	if s.Source == nil {
		return
	}
	for _, o := range s.Source.Overlaps() {
		w.Events().Push(ecs.Event{Type: ecs.EventOverlap, Entity: o.Hitbox, Data: o})
	}
}

// boxRect centers a box on the transform plus an offset mirrored by facing.
func boxRect(tr *component.Transform, offset, size common.Vec2) common.Rect {
	center := tr.Position.Add(offset.MirrorX(tr.Facing == common.FacingLeft))
	return common.RectAround(center, size)
}
