package system

import (
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/entity"
	"github.com/sirupsen/logrus"
)

// PlayerControllerSystem advances the player's timers and motion, fires clip
// completions from the configured durations and spawns pending throws.
type PlayerControllerSystem struct {
	Actions *PlayerActions
}

func NewPlayerControllerSystem(actions *PlayerActions) *PlayerControllerSystem {
	return &PlayerControllerSystem{Actions: actions}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if s == nil || s.Actions == nil || w == nil {
		return
	}

	_, arena, _ := ecs.First(w, component.ArenaComponent.Kind())
	ecs.ForEach(w, component.PlayerRuntimeComponent.Kind(), func(e ecs.Entity, _ *component.PlayerRuntime) {
		p, ok := loadPlayer(w, e)
		if !ok {
			return
		}
		s.step(w, p, arena)
	})
}

func (s *PlayerControllerSystem) step(w *ecs.World, p *player, arena *component.Arena) {
	dt := w.Dt
	p.stamina.Tick(dt)
	p.recovery.Tick(dt)
	p.stance.Tick(dt)
	p.health.Tick(dt)

	if !p.rt.Dead && !p.health.IsAlive() {
		s.Actions.die(w, p)
	}
	if ecs.Has(w, p.e, component.DamageKnockbackRequestComponent.Kind()) {
		s.Actions.ReactToHit(w, p.e)
	}

	p.rt.Velocity = s.velocity(w, p, dt)
	p.tr.Position = p.tr.Position.Add(p.rt.Velocity.Scale(dt))
	if arena != nil {
		p.tr.Position = arena.Bounds.ClampPoint(p.tr.Position)
	}
	if p.rt.Dead {
		return
	}

	s.advanceClips(w, p, dt)
	s.syncAttackHitbox(w, p)
	s.spawnPendingThrow(w, p, dt)
}

// velocity picks the first motion source that applies: dead, knockback,
// dodge, guard, hitstun, then input.
func (s *PlayerControllerSystem) velocity(w *ecs.World, p *player, dt float64) common.Vec2 {
	rt := p.rt
	switch {
	case rt.Dead:
		return common.Zero
	case rt.Knockback.Active:
		v, done := rt.Knockback.Advance(dt)
		if done {
			rt.Move = rt.Held
		}
		return v
	case rt.Dodge.Active:
		v, done := rt.Dodge.Advance(dt)
		if done {
			s.Actions.OnDodgeComplete(w, p.e)
		}
		return v
	case p.stance.IsBlocking() || p.stance.IsParrying():
		return common.Zero
	case rt.Hit.Playing && p.recovery.IsLocked():
		return common.Zero
	default:
		return rt.Move.Scale(p.cfg.MoveSpeed)
	}
}

func (s *PlayerControllerSystem) advanceClips(w *ecs.World, p *player, dt float64) {
	rt, clips := p.rt, p.cfg.Clips
	if tickClip(&rt.Attack, dt, clips.Attack) {
		s.Actions.OnAttackComplete(w, p.e)
	}
	if tickClip(&rt.Throw, dt, clips.Throw) {
		s.Actions.OnThrowComplete(w, p.e)
	}
	if tickClip(&rt.Hit, dt, clips.Hit) {
		s.Actions.OnHitComplete(w, p.e)
	}
	if tickClip(&rt.ParryClip, dt, clips.Parry) {
		s.Actions.OnParryEnd(w, p.e)
	}
}

// tickClip reports whether a playing clip ran past a non-zero duration.
func tickClip(c *component.Clip, dt, duration float64) bool {
	if !c.Playing {
		return false
	}
	c.Elapsed += dt
	return duration > 0 && common.Elapsed(c.Elapsed, duration)
}

// syncAttackHitbox keeps the melee box live only inside the clip's hit window.
func (s *PlayerControllerSystem) syncAttackHitbox(w *ecs.World, p *player) {
	hb, ok := ecs.Get(w, ecs.Entity(p.rt.AttackHitbox), component.HitboxComponent.Kind())
	if !ok {
		return
	}
	clip := p.rt.Attack
	if clip.Playing && clip.Elapsed >= p.cfg.AttackHitStart && clip.Elapsed < p.cfg.AttackHitEnd {
		hb.Activate()
		return
	}
	hb.Deactivate()
}

func (s *PlayerControllerSystem) spawnPendingThrow(w *ecs.World, p *player, dt float64) {
	pending := &p.rt.Pending
	if !pending.Active {
		return
	}
	pending.Timer += dt
	if !common.Elapsed(pending.Timer, p.cfg.ThrowSpawnDelay) {
		return
	}
	origin := p.tr.Position.Add(p.tr.Facing.Vec().Scale(p.cfg.ProjectileOffset))
	proj, err := entity.NewProjectile(w, p.e, p.cfg, origin, pending.Direction)
	*pending = component.PendingThrow{}
	if err != nil {
		s.Actions.Log.WithError(err).Warn("player: spawn projectile")
		return
	}
	s.Actions.trigger(w, cue.Projectile, proj)
	s.Actions.Log.WithFields(logrus.Fields{"entity": proj.String(), "origin": origin.String()}).Debug("player: projectile spawned")
}
