package system

import (
	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/sirupsen/logrus"
)

// CombatSystem resolves the overlaps queued by the physics system against
// post-movement positions.
type CombatSystem struct {
	Resolver *combat.Resolver
	Actions  *PlayerActions
	Boss     *BossSystem
	Log      logrus.FieldLogger
}

func NewCombatSystem(resolver *combat.Resolver, actions *PlayerActions, boss *BossSystem, log logrus.FieldLogger) *CombatSystem {
	if resolver == nil {
		resolver = combat.NewResolver(nil)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CombatSystem{Resolver: resolver, Actions: actions, Boss: boss, Log: log}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.Resolver.Tick()
	for _, evt := range w.Events().DrainType(ecs.EventOverlap) {
		o, ok := evt.Data.(ecs.Overlap)
		if !ok {
			continue
		}
		s.resolve(w, o)
	}
}

// counterFunc adapts a closure to combat.Counterable.
type counterFunc func()

func (f counterFunc) OnCountered() { f() }

func (s *CombatSystem) resolve(w *ecs.World, o ecs.Overlap) {
	hb, ok := ecs.Get(w, o.Hitbox, component.HitboxComponent.Kind())
	if !ok || !hb.Active {
		return
	}
	hurt, ok := ecs.Get(w, o.Hurtbox, component.HurtboxComponent.Kind())
	if !ok || !hurt.Enabled {
		return
	}
	health, ok := ecs.Get(w, o.Hurtbox, component.HealthComponent.Kind())
	if !ok {
		return
	}

	attacker := ecs.Entity(hb.Owner)
	hitbox := hb.Name
	hit := combat.Hit{
		AttackerID:      hb.Owner,
		TargetID:        uint64(o.Hurtbox),
		Hitbox:          hitbox,
		Activation:      hb.Activation,
		Damage:          hb.Damage,
		AttackerFaction: hb.Faction,
		TargetFaction:   hurt.Faction,
		Attacker:        position(w, attacker, o.Hitbox),
		Defender:        position(w, o.Hurtbox, o.Hurtbox),
		Target:          health,
		Counter: counterFunc(func() {
			_ = ecs.Add(w, attacker, component.CounteredComponent.Kind(), &component.Countered{Hitbox: hitbox})
		}),
	}
	if stance, ok := ecs.Get(w, o.Hurtbox, component.StanceComponent.Kind()); ok {
		hit.Stance = stance
	}

	res := s.Resolver.Resolve(hit)
	if res.Tier == combat.TierNone {
		return
	}
	s.Log.WithFields(logrus.Fields{
		"hitbox": hitbox,
		"target": o.Hurtbox.String(),
		"tier":   res.Tier.String(),
		"damage": res.Damage,
	}).Debug("combat: resolved")

	if res.Applied && !health.IsAlive() {
		s.Resolver.Emitter.Emit(combat.Event{
			Type:       combat.EventDeath,
			AttackerID: hb.Owner,
			TargetID:   uint64(o.Hurtbox),
			Hitbox:     hitbox,
			Damage:     res.Damage,
			Tier:       res.Tier,
			Tick:       w.Tick,
		})
	}

	_, isPart := ecs.Get(w, o.Hurtbox, component.BossPartComponent.Kind())
	isPlayer := ecs.Has(w, o.Hurtbox, component.PlayerTagComponent.Kind())
	switch {
	case res.Tier == combat.TierParried && isPlayer:
		s.Actions.OnParried(w, o.Hurtbox, attacker)
	case res.Applied && isPart:
		s.Boss.OnPartHit(w, o.Hurtbox, res.Damage)
	case res.Applied && isPlayer:
		s.Actions.ReactToHit(w, o.Hurtbox)
	}

	if isPart && ecs.Has(w, o.Hitbox, component.ProjectileTagComponent.Kind()) {
		destroy(w, o.Hitbox)
	}
}

// position reads e's transform, falling back to another entity's.
func position(w *ecs.World, e, fallback ecs.Entity) combat.Positioned {
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return combat.Point(tr.Position)
	}
	if tr, ok := ecs.Get(w, fallback, component.TransformComponent.Kind()); ok {
		return combat.Point(tr.Position)
	}
	return nil
}
