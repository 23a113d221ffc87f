package system

import (
	"time"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/sirupsen/logrus"
)

// minDodgeInput is the smallest movement input a dodge accepts.
const minDodgeInput = 0.1

// PlayerActions owns the player's action requests and clip completions. The
// input system calls the request handlers; the controller and combat system
// call the completions and hit reactions.
type PlayerActions struct {
	Log  logrus.FieldLogger
	Cues cue.Sink
}

func NewPlayerActions(log logrus.FieldLogger, cues cue.Sink) *PlayerActions {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cues == nil {
		cues = cue.Nop{}
	}
	return &PlayerActions{Log: log, Cues: cues}
}

type player struct {
	e        ecs.Entity
	cfg      *component.Player
	rt       *component.PlayerRuntime
	tr       *component.Transform
	stamina  *combat.StaminaPool
	recovery *combat.RecoveryGate
	stance   *combat.BlockParryState
	health   *combat.HealthPool
}

func loadPlayer(w *ecs.World, e ecs.Entity) (*player, bool) {
	cfg, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return nil, false
	}
	rt, ok := ecs.Get(w, e, component.PlayerRuntimeComponent.Kind())
	if !ok {
		return nil, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	p := &player{e: e, cfg: cfg, rt: rt, tr: tr}
	p.stamina, _ = ecs.Get(w, e, component.StaminaComponent.Kind())
	p.recovery, _ = ecs.Get(w, e, component.RecoveryComponent.Kind())
	p.stance, _ = ecs.Get(w, e, component.StanceComponent.Kind())
	p.health, _ = ecs.Get(w, e, component.HealthComponent.Kind())
	return p, true
}

// simTime maps world seconds onto a wall clock so rate limiters run on
// simulation time.
func simTime(w *ecs.World) time.Time {
	return time.Unix(0, 0).Add(time.Duration(w.Time * float64(time.Second)))
}

func (a *PlayerActions) trigger(w *ecs.World, name cue.Name, e ecs.Entity) {
	a.Cues.Trigger(cue.Event{Name: name, Entity: uint64(e), Tick: w.Tick})
}

func (a *PlayerActions) reject(p *player, action, reason string) bool {
	a.Log.WithFields(logrus.Fields{"entity": p.e.String(), "action": action, "reason": reason}).Debug("player: action rejected")
	return false
}

// gate is the check shared by every request except block release.
func (a *PlayerActions) gate(w *ecs.World, p *player, action string) bool {
	if p.rt.Dead || !p.health.IsAlive() {
		return a.reject(p, action, "dead")
	}
	if p.rt.Limiter != nil && p.rt.Limiter.TokensAt(simTime(w)) < 1 {
		return a.reject(p, action, "debounce")
	}
	switch {
	case p.rt.Dodging():
		return a.reject(p, action, "dodging")
	case p.rt.KnockedBack():
		return a.reject(p, action, "knockback")
	case p.stance.IsBlocking() || p.stance.IsParrying():
		return a.reject(p, action, "blocking")
	case p.rt.ParryClip.Playing:
		return a.reject(p, action, "parry")
	case p.rt.Hit.Playing:
		return a.reject(p, action, "hitstun")
	case p.recovery.IsLocked():
		return a.reject(p, action, "recovery")
	}
	return true
}

// accept pays for an action that passed the gate.
func (a *PlayerActions) accept(w *ecs.World, p *player, action string, cost, recovery float64, name cue.Name) bool {
	if !p.stamina.TryConsume(cost) {
		return a.reject(p, action, "stamina")
	}
	if p.rt.Limiter != nil {
		p.rt.Limiter.AllowN(simTime(w), 1)
	}
	p.recovery.TryLock(recovery)
	a.trigger(w, name, p.e)
	a.Log.WithFields(logrus.Fields{"entity": p.e.String(), "action": action, "stamina": p.stamina.Current}).Debug("player: action accepted")
	return true
}

// Move records the raw movement input. Dodge and knockback own the applied
// input until they end.
func (a *PlayerActions) Move(w *ecs.World, e ecs.Entity, v common.Vec2) {
	p, ok := loadPlayer(w, e)
	if !ok || p.rt.Dead {
		return
	}
	p.rt.Held = v
	if !p.rt.Dodging() && !p.rt.KnockedBack() {
		p.rt.Move = v
	}
	if v.Len() >= minDodgeInput {
		p.rt.LastMoveDir = v.Normalize()
	}
	switch {
	case v.X < 0:
		p.tr.Facing = common.FacingLeft
	case v.X > 0:
		p.tr.Facing = common.FacingRight
	}
}

func (a *PlayerActions) Attack(w *ecs.World, e ecs.Entity) bool {
	p, ok := loadPlayer(w, e)
	if !ok || !a.gate(w, p, "attack") {
		return false
	}
	if p.rt.Attack.Playing || p.rt.Throw.Playing {
		return a.reject(p, "attack", "clip")
	}
	if !a.accept(w, p, "attack", p.cfg.Costs.Attack, p.cfg.Recovery.Attack, cue.Attack) {
		return false
	}
	p.rt.Attack.Start()
	return true
}

func (a *PlayerActions) Dodge(w *ecs.World, e ecs.Entity) bool {
	p, ok := loadPlayer(w, e)
	if !ok || !a.gate(w, p, "dodge") {
		return false
	}
	if p.rt.Held.Len() < minDodgeInput {
		return a.reject(p, "dodge", "no direction")
	}
	if !a.accept(w, p, "dodge", p.cfg.Costs.Dodge, p.cfg.Recovery.Dodge, cue.Dodge) {
		return false
	}
	p.rt.Dodge.Start(p.rt.Held, p.cfg.DodgeSpeed, p.cfg.DodgeDuration)
	p.rt.Move = common.Zero
	p.health.StartInvulnerability(p.cfg.DodgeDuration)
	return true
}

func (a *PlayerActions) Throw(w *ecs.World, e ecs.Entity) bool {
	p, ok := loadPlayer(w, e)
	if !ok || !a.gate(w, p, "throw") {
		return false
	}
	if p.rt.Attack.Playing || p.rt.Throw.Playing {
		return a.reject(p, "throw", "clip")
	}
	if !a.accept(w, p, "throw", p.cfg.Costs.Throw, p.cfg.Recovery.Throw, cue.Throw) {
		return false
	}
	dir := p.rt.LastMoveDir
	if dir.IsZero() {
		dir = p.tr.Facing.Vec()
	}
	p.rt.Throw.Start()
	p.rt.Pending = component.PendingThrow{Active: true, Direction: dir}
	return true
}

func (a *PlayerActions) BlockPress(w *ecs.World, e ecs.Entity) bool {
	p, ok := loadPlayer(w, e)
	if !ok || !a.gate(w, p, "block") {
		return false
	}
	if !a.accept(w, p, "block", p.cfg.Costs.Block, p.cfg.Recovery.Block, cue.Block) {
		return false
	}
	p.stance.StartBlock()
	return true
}

// BlockRelease only honours death.
func (a *PlayerActions) BlockRelease(w *ecs.World, e ecs.Entity) bool {
	p, ok := loadPlayer(w, e)
	if !ok || p.rt.Dead {
		return false
	}
	if !p.stance.IsBlocking() && !p.stance.IsParrying() {
		return false
	}
	p.stance.EndBlock()
	a.trigger(w, cue.BlockEnd, e)
	return true
}

func (a *PlayerActions) OnAttackComplete(w *ecs.World, e ecs.Entity) {
	p, ok := loadPlayer(w, e)
	if !ok {
		return
	}
	p.rt.Attack.Stop()
	a.disarm(w, p)
}

func (a *PlayerActions) OnDodgeComplete(w *ecs.World, e ecs.Entity) {
	p, ok := loadPlayer(w, e)
	if !ok {
		return
	}
	p.rt.Dodge.Stop()
	p.rt.Move = p.rt.Held
}

func (a *PlayerActions) OnThrowComplete(w *ecs.World, e ecs.Entity) {
	if p, ok := loadPlayer(w, e); ok {
		p.rt.Throw.Stop()
	}
}

// OnHitComplete ends hitstun.
func (a *PlayerActions) OnHitComplete(w *ecs.World, e ecs.Entity) {
	p, ok := loadPlayer(w, e)
	if !ok {
		return
	}
	p.rt.Hit.Stop()
	p.recovery.Release()
}

func (a *PlayerActions) OnParryEnd(w *ecs.World, e ecs.Entity) {
	p, ok := loadPlayer(w, e)
	if !ok {
		return
	}
	p.rt.ParryClip.Stop()
	p.stance.OnParryEnd()
}

// OnParried plays the parry reaction and refunds stamina.
func (a *PlayerActions) OnParried(w *ecs.World, e ecs.Entity, source ecs.Entity) {
	p, ok := loadPlayer(w, e)
	if !ok {
		return
	}
	p.rt.ParryClip.Start()
	p.stamina.Refund(p.cfg.Costs.ParryRefund)
	a.trigger(w, cue.Parry, e)
	a.Log.WithFields(logrus.Fields{"entity": e.String(), "source": source.String()}).Info("player: parried")
}

// ReactToHit consumes a pending knockback request. A killing blow ends the
// player on the spot. A blocked hit pushes the player back a little and keeps
// the block; anything else cancels every action.
func (a *PlayerActions) ReactToHit(w *ecs.World, e ecs.Entity) {
	req, ok := ecs.Get(w, e, component.DamageKnockbackRequestComponent.Kind())
	if !ok {
		return
	}
	dir, blocked := req.Direction, req.Blocked
	ecs.Remove(w, e, component.DamageKnockbackRequestComponent.Kind())

	p, ok := loadPlayer(w, e)
	if !ok || p.rt.Dead {
		return
	}
	if !p.health.IsAlive() {
		a.die(w, p)
		return
	}
	if blocked {
		p.rt.Knockback.StartDistance(dir, p.cfg.KnockbackBlock, p.cfg.KnockbackDuration)
		a.trigger(w, cue.BlockedHit, e)
	} else {
		a.CancelAllActions(w, e)
		p.rt.Knockback.StartDistance(dir, p.cfg.KnockbackFull, p.cfg.KnockbackDuration)
	}
	p.rt.Move = common.Zero
}

// CancelAllActions drops whatever the player was doing and starts hitstun.
func (a *PlayerActions) CancelAllActions(w *ecs.World, e ecs.Entity) {
	p, ok := loadPlayer(w, e)
	if !ok {
		return
	}
	p.rt.Dodge.Stop()
	p.rt.Attack.Stop()
	p.rt.Throw.Stop()
	p.rt.ParryClip.Stop()
	p.rt.Pending = component.PendingThrow{}
	p.rt.Hit.Start()
	a.disarm(w, p)
	p.stance.EndBlock()
	p.recovery.ForceLock(p.cfg.Recovery.Hitstun)
	a.trigger(w, cue.Hit, e)
}

// die is terminal: every action stops and the hurtbox goes away.
func (a *PlayerActions) die(w *ecs.World, p *player) {
	p.rt.Dead = true
	p.rt.Dodge.Stop()
	p.rt.Knockback.Stop()
	p.rt.Attack.Stop()
	p.rt.Throw.Stop()
	p.rt.Hit.Stop()
	p.rt.ParryClip.Stop()
	p.rt.Pending = component.PendingThrow{}
	p.rt.Move = common.Zero
	p.stance.EndBlock()
	a.disarm(w, p)
	if hurt, ok := ecs.Get(w, p.e, component.HurtboxComponent.Kind()); ok {
		hurt.Enabled = false
	}
	a.trigger(w, cue.Death, p.e)
	a.Log.WithField("entity", p.e.String()).Info("player: dead")
}

func (a *PlayerActions) disarm(w *ecs.World, p *player) {
	if hb, ok := ecs.Get(w, ecs.Entity(p.rt.AttackHitbox), component.HitboxComponent.Kind()); ok {
		hb.Deactivate()
	}
}
