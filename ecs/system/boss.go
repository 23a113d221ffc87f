package system

import (
	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/entity"
	"github.com/sirupsen/logrus"
)

// BossSystem runs the boss state machine. Exactly one state is active; each
// tick makes at most one transition.
type BossSystem struct {
	Log    logrus.FieldLogger
	Cues   cue.Sink
	Script *BossScript

	states map[component.BossStateID]bossState
}

func NewBossSystem(log logrus.FieldLogger, cues cue.Sink, script *BossScript) *BossSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cues == nil {
		cues = cue.Nop{}
	}
	s := &BossSystem{Log: log, Cues: cues, Script: script}
	s.states = s.stateTable()
	return s
}

// boss is one tick's view of a boss entity.
type boss struct {
	w       *ecs.World
	e       ecs.Entity
	cfg     *component.Boss
	rt      *component.BossRuntime
	tr      *component.Transform
	health  *combat.HealthPool
	stagger *combat.StaggerMeter

	arena     *component.Arena
	playerPos common.Vec2
	hasPlayer bool
}

func (s *BossSystem) load(w *ecs.World, e ecs.Entity) (*boss, bool) {
	cfg, ok := ecs.Get(w, e, component.BossComponent.Kind())
	if !ok {
		return nil, false
	}
	rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
	if !ok {
		return nil, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	b := &boss{w: w, e: e, cfg: cfg, rt: rt, tr: tr}
	b.health, _ = ecs.Get(w, e, component.HealthComponent.Kind())
	b.stagger, _ = ecs.Get(w, e, component.StaggerComponent.Kind())
	_, b.arena, _ = ecs.First(w, component.ArenaComponent.Kind())
	if pe, _, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if ptr, ok := ecs.Get(w, pe, component.TransformComponent.Kind()); ok {
			b.playerPos, b.hasPlayer = ptr.Position, true
		}
	}
	return b, true
}

func (s *BossSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.BossRuntimeComponent.Kind(), func(e ecs.Entity, _ *component.BossRuntime) {
		if b, ok := s.load(w, e); ok {
			s.step(b)
		}
	})
}

// step runs the forced checks first (counter, phase, stagger), then the
// current state's advance.
func (s *BossSystem) step(b *boss) {
	dt := b.w.Dt
	rt := b.rt
	if rt.State == component.BossDead {
		return
	}
	rt.SinceAttack += dt

	if c, ok := ecs.Get(b.w, b.e, component.CounteredComponent.Kind()); ok {
		name := c.Hitbox
		ecs.Remove(b.w, b.e, component.CounteredComponent.Kind())
		s.countered(b, name)
	}

	if rt.Phase == 1 && b.cfg.LimbBreakThreshold > 0 && rt.LimbsBroken >= b.cfg.LimbBreakThreshold {
		s.enterPhaseTwo(b)
		return
	}
	if b.stagger.Full() && rt.State != component.BossStun {
		s.transition(b, component.BossStun)
		return
	}
	b.stagger.Decay(dt)

	st, ok := s.states[rt.State]
	if !ok || st.advance == nil {
		return
	}
	rt.Payload.Elapsed += dt
	if next := st.advance(s, b, dt); next != rt.State {
		s.transition(b, next)
	}
}

// transition runs the old state's exit, clears the payload and enters next.
// Dead never transitions out.
func (s *BossSystem) transition(b *boss, next component.BossStateID) {
	rt := b.rt
	prev := rt.State
	if prev == component.BossDead {
		return
	}
	if st, ok := s.states[prev]; ok && st.exit != nil {
		st.exit(s, b)
	}
	rt.State = next
	rt.Payload = component.BossStatePayload{}
	if st, ok := s.states[next]; ok && st.enter != nil {
		st.enter(s, b)
	}
	s.Log.WithFields(logrus.Fields{
		"entity": b.e.String(),
		"from":   prev.String(),
		"state":  next.String(),
		"phase":  rt.Phase,
	}).Info("boss: state")
}

func (s *BossSystem) trigger(b *boss, name cue.Name) {
	s.Cues.Trigger(cue.Event{Name: name, Entity: uint64(b.e), Tick: b.w.Tick})
}

// countered cancels the parried swing and, in phase one, staggers the boss.
func (s *BossSystem) countered(b *boss, hitbox string) {
	s.cancelSwing(b)
	if b.rt.Phase == 1 && b.rt.State != component.BossStun {
		b.stagger.Add(b.cfg.ParryStagger)
	}
	s.Log.WithFields(logrus.Fields{"entity": b.e.String(), "hitbox": hitbox, "stagger": b.stagger.Current}).Debug("boss: countered")
}

func (s *BossSystem) enterPhaseTwo(b *boss) {
	rt := b.rt
	rt.Phase = 2
	b.health.Floor = 0
	b.stagger.Reset()
	if hurt, ok := ecs.Get(b.w, ecs.Entity(rt.Body), component.HurtboxComponent.Kind()); ok {
		hurt.Enabled = true
	}
	s.trigger(b, cue.BossPhase2)
	s.Log.WithFields(logrus.Fields{"entity": b.e.String(), "limbs_broken": rt.LimbsBroken}).Info("boss: phase two")
	s.transition(b, component.BossMoveToStart)
}

// OnHit books damage against the boss. Phase one raises stagger (except while
// stunned) and cannot kill; phase two skips stagger and can.
func (s *BossSystem) OnHit(w *ecs.World, e ecs.Entity, damage float64) {
	b, ok := s.load(w, e)
	if !ok || b.rt.State == component.BossDead || damage <= 0 {
		return
	}
	if b.rt.Phase == 1 && b.rt.State != component.BossStun {
		b.stagger.Add(damage)
	}
	b.health.TakeDamage(damage, common.Zero)
	s.trigger(b, cue.BossHurt)
	s.Log.WithFields(logrus.Fields{
		"entity":  e.String(),
		"damage":  damage,
		"hp":      b.health.Current,
		"stagger": b.stagger.Current,
	}).Debug("boss: hit")

	if b.rt.Phase > 1 && !b.health.IsAlive() {
		s.transition(b, component.BossDead)
	}
}

// OnPartHit forwards damage a limb or the body took to its boss, and breaks
// the part when its own health runs out.
func (s *BossSystem) OnPartHit(w *ecs.World, part ecs.Entity, damage float64) {
	bp, ok := ecs.Get(w, part, component.BossPartComponent.Kind())
	if !ok {
		return
	}
	owner := ecs.Entity(bp.Owner)
	s.OnHit(w, owner, damage)
	if h, ok := ecs.Get(w, part, component.HealthComponent.Kind()); ok && !h.IsAlive() {
		s.BreakPart(w, part)
	}
}

// BreakPart removes a part. A limb also takes its slash hitbox with it and
// counts toward the phase change.
func (s *BossSystem) BreakPart(w *ecs.World, part ecs.Entity) {
	bp, ok := ecs.Get(w, part, component.BossPartComponent.Kind())
	if !ok {
		return
	}
	kind, side, hitbox := bp.Kind, bp.Side, ecs.Entity(bp.Hitbox)
	b, hasBoss := s.load(w, ecs.Entity(bp.Owner))
	destroy(w, part)
	if kind != component.PartLimb {
		return
	}

	if hitbox.Valid() {
		destroy(w, hitbox)
	}
	if !hasBoss {
		return
	}
	b.rt.LimbsBroken++
	if sw := b.rt.Payload.Swing; sw != nil && ecs.Entity(sw.Hitbox) == hitbox {
		b.rt.Payload.Swing = nil
	}
	for name, id := range b.rt.Hitboxes {
		if ecs.Entity(id) == hitbox {
			delete(b.rt.Hitboxes, name)
		}
	}
	s.trigger(b, cue.LimbBreak)
	s.Log.WithFields(logrus.Fields{"entity": b.e.String(), "side": side.String(), "limbs_broken": b.rt.LimbsBroken}).Info("boss: limb broken")
}

func (s *BossSystem) hitbox(b *boss, name string) *component.Hitbox {
	id, ok := b.rt.Hitboxes[name]
	if !ok {
		return nil
	}
	hb, _ := ecs.Get(b.w, ecs.Entity(id), component.HitboxComponent.Kind())
	return hb
}

// flankPoint is the spot beside the player on the boss's side, or on the
// other side when the arena wall leaves no room.
func (s *BossSystem) flankPoint(b *boss) common.Vec2 {
	side := 1.0
	if b.tr.Position.X < b.playerPos.X {
		side = -1
	}
	p := b.playerPos.Add(common.V(side*b.cfg.FlankOffset, 0))
	if b.arena == nil || b.arena.Bounds.Contains(p) {
		return p
	}
	if alt := b.playerPos.Add(common.V(-side*b.cfg.FlankOffset, 0)); b.arena.Bounds.Contains(alt) {
		return alt
	}
	return b.arena.Bounds.ClampPoint(p)
}

func (s *BossSystem) inRange(b *boss) bool {
	return b.hasPlayer && b.tr.Position.Dist(s.flankPoint(b)) <= b.cfg.AttackRange
}

func (s *BossSystem) facePlayer(b *boss) {
	if b.hasPlayer && b.playerPos.X != b.tr.Position.X {
		b.tr.Facing = common.FacingToward(b.tr.Position, b.playerPos)
	}
}

// moveTo steps toward target and reports arrival within radius.
func (s *BossSystem) moveTo(b *boss, target common.Vec2, speed, dt, radius float64) bool {
	if target.X != b.tr.Position.X {
		b.tr.Facing = common.FacingToward(b.tr.Position, target)
	}
	b.tr.Position = b.tr.Position.MoveTowards(target, speed*dt)
	return b.tr.Position.Dist(target) <= radius
}

// selectAttack asks the script, falling back to the built-in rule when there
// is none or it fails.
func (s *BossSystem) selectAttack(b *boss) component.AttackKind {
	side := common.FacingToward(b.tr.Position, b.playerPos)
	q := AttackQuery{
		Side:       side,
		LimbIntact: s.hitbox(b, entity.SlashHitbox(side)) != nil,
		InRange:    s.inRange(b),
		Phase:      b.rt.Phase,
	}
	if s.Script == nil {
		return builtinAttack(q)
	}
	kind, err := s.Script.Select(q)
	if err != nil {
		s.Log.WithError(err).WithField("entity", b.e.String()).Warn("boss: attack script failed, using built-in selection")
		return builtinAttack(q)
	}
	return kind
}

func (s *BossSystem) startSwing(b *boss, kind component.AttackKind) {
	side := common.FacingToward(b.tr.Position, b.playerPos)
	name := entity.HitboxRam
	if kind == component.AttackSlash {
		name = entity.SlashHitbox(side)
		if s.hitbox(b, name) == nil {
			kind, name = component.AttackRam, entity.HitboxRam
		}
	}
	id, ok := b.rt.Hitboxes[name]
	if !ok {
		return
	}
	b.rt.Payload.Swing = &component.Swing{
		Kind:   kind,
		Side:   side,
		Hitbox: id,
		Attack: b.cfg.Attacks[kind],
	}
	b.rt.SinceAttack = 0
	if kind == component.AttackSlash {
		s.trigger(b, cue.BossSlash)
	} else {
		s.trigger(b, cue.BossRam)
	}
	s.Log.WithFields(logrus.Fields{"entity": b.e.String(), "attack": string(kind), "side": side.String()}).Info("boss: attack")
}

// advanceSwing drives the hitbox through windup, active and recover. It
// reports whether the swing finished.
func (s *BossSystem) advanceSwing(b *boss, dt float64) bool {
	sw := b.rt.Payload.Swing
	sw.Elapsed += dt
	hb, _ := ecs.Get(b.w, ecs.Entity(sw.Hitbox), component.HitboxComponent.Kind())
	if common.Elapsed(sw.Elapsed, sw.Attack.Total()) {
		hb.Deactivate()
		b.rt.Payload.Swing = nil
		return true
	}
	if sw.Elapsed >= sw.Attack.Windup && sw.Elapsed < sw.Attack.Windup+sw.Attack.Active {
		hb.Activate()
	} else {
		hb.Deactivate()
	}
	return false
}

func (s *BossSystem) cancelSwing(b *boss) {
	sw := b.rt.Payload.Swing
	if sw == nil {
		return
	}
	if hb, ok := ecs.Get(b.w, ecs.Entity(sw.Hitbox), component.HitboxComponent.Kind()); ok {
		hb.Deactivate()
	}
	b.rt.Payload.Swing = nil
}
