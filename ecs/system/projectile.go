package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// ProjectileSystem flies thrown projectiles and removes them past their range
// or outside the arena.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	_, arena, _ := ecs.First(w, component.ArenaComponent.Kind())
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, proj *component.Projectile, tr *component.Transform) {
		tr.Position = tr.Position.Add(proj.Direction.Scale(proj.Speed * w.Dt))
		spent := proj.MaxDistance > 0 && tr.Position.Dist(proj.Origin) >= proj.MaxDistance
		outside := arena != nil && !arena.Bounds.Contains(tr.Position)
		if spent || outside {
			destroy(w, e)
		}
	})
}

// destroy removes e and announces it on the event queue.
func destroy(w *ecs.World, e ecs.Entity) {
	if ecs.DestroyEntity(w, e) {
		w.Events().Push(ecs.Event{Type: ecs.EventDestroyed, Entity: e})
	}
}
