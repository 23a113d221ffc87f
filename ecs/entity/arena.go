package entity

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

func NewArena(w *ecs.World, spec *prefabs.ArenaSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ArenaComponent.Kind(), ArenaFromSpec(spec)); err != nil {
		return 0, err
	}
	return e, nil
}

func ArenaFromSpec(spec *prefabs.ArenaSpec) *component.Arena {
	arena := &component.Arena{}
	if spec == nil {
		return arena
	}
	arena.Bounds = spec.Bounds
	for _, l := range spec.Lanes {
		arena.Lanes = append(arena.Lanes, component.DashLane{A: l.A, Mid: l.Mid, B: l.B})
	}
	return arena
}
