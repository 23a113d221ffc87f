package system

import (
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/entity"
)

// bossState is one row of the state table. advance returns the next state;
// returning the current one stays put.
type bossState struct {
	enter   func(s *BossSystem, b *boss)
	advance func(s *BossSystem, b *boss, dt float64) component.BossStateID
	exit    func(s *BossSystem, b *boss)
}

func (s *BossSystem) stateTable() map[component.BossStateID]bossState {
	return map[component.BossStateID]bossState{
		component.BossChase: {
			advance: (*BossSystem).advanceChase,
		},
		component.BossAttacking: {
			advance: (*BossSystem).advanceAttack,
			exit:    (*BossSystem).cancelSwing,
		},
		component.BossStun: {
			enter:   (*BossSystem).enterStun,
			advance: (*BossSystem).advanceStun,
		},
		component.BossMoveToStart: {
			enter:   (*BossSystem).enterMoveToStart,
			advance: (*BossSystem).advanceMoveToStart,
		},
		component.BossMoveToEnd: {
			enter:   (*BossSystem).enterMoveToEnd,
			advance: (*BossSystem).advanceMoveToEnd,
			exit:    (*BossSystem).exitMoveToEnd,
		},
		component.BossIdle: {
			advance: (*BossSystem).advanceIdle,
		},
		component.BossDead: {
			enter: (*BossSystem).enterDead,
		},
	}
}

func (s *BossSystem) advanceChase(b *boss, dt float64) component.BossStateID {
	if !b.hasPlayer {
		return component.BossChase
	}
	if s.inRange(b) {
		s.facePlayer(b)
		return component.BossAttacking
	}
	s.moveTo(b, s.flankPoint(b), b.cfg.MoveSpeed, dt, 0)
	return component.BossChase
}

// advanceAttack finishes the current swing, then waits out the cooldown and
// starts the next one while the player stays in range.
func (s *BossSystem) advanceAttack(b *boss, dt float64) component.BossStateID {
	if b.rt.Payload.Swing != nil {
		s.advanceSwing(b, dt)
		return component.BossAttacking
	}
	if !s.inRange(b) {
		return component.BossChase
	}
	s.facePlayer(b)
	if b.rt.SinceAttack < b.cfg.AttackInterval {
		return component.BossAttacking
	}
	kind := s.selectAttack(b)
	if kind == component.AttackChase {
		return component.BossChase
	}
	s.startSwing(b, kind)
	return component.BossAttacking
}

func (s *BossSystem) enterStun(b *boss) {
	s.cancelSwing(b)
	if hb := s.hitbox(b, entity.HitboxContact); hb != nil {
		hb.Deactivate()
	}
	s.trigger(b, cue.BossStun)
}

func (s *BossSystem) advanceStun(b *boss, _ float64) component.BossStateID {
	if !common.Elapsed(b.rt.Payload.Elapsed, b.cfg.StunDuration) {
		return component.BossStun
	}
	b.stagger.Reset()
	if b.rt.Phase > 1 {
		return component.BossMoveToStart
	}
	return component.BossChase
}

// enterMoveToStart picks the lane nearest the player and heads for its end
// nearer the boss.
func (s *BossSystem) enterMoveToStart(b *boss) {
	b.rt.DashLane = -1
	if b.arena == nil {
		return
	}
	from := b.tr.Position
	if b.hasPlayer {
		from = b.playerPos
	}
	lane := b.arena.NearestLane(from)
	if lane < 0 {
		return
	}
	b.rt.DashLane = lane
	b.rt.Payload.Target = b.arena.Lanes[lane].StartFrom(b.tr.Position)
	s.trigger(b, cue.BossDash)
}

func (s *BossSystem) advanceMoveToStart(b *boss, dt float64) component.BossStateID {
	if b.rt.DashLane < 0 {
		return component.BossIdle
	}
	if s.moveTo(b, b.rt.Payload.Target, b.cfg.MoveSpeed*b.cfg.DashStartMult, dt, b.cfg.ArrivalRadius) {
		return component.BossMoveToEnd
	}
	return component.BossMoveToStart
}

// enterMoveToEnd turns around toward the far end of the lane and arms the
// contact hitbox.
func (s *BossSystem) enterMoveToEnd(b *boss) {
	if b.arena == nil || b.rt.DashLane < 0 || b.rt.DashLane >= len(b.arena.Lanes) {
		b.rt.Payload.Target = b.tr.Position
		return
	}
	b.rt.Payload.Target = b.arena.Lanes[b.rt.DashLane].EndFrom(b.tr.Position)
	b.tr.Facing = common.FacingToward(b.tr.Position, b.rt.Payload.Target)
	if hb := s.hitbox(b, entity.HitboxContact); hb != nil {
		hb.Activate()
	}
}

func (s *BossSystem) advanceMoveToEnd(b *boss, dt float64) component.BossStateID {
	if s.moveTo(b, b.rt.Payload.Target, b.cfg.MoveSpeed*b.cfg.DashEndMult, dt, b.cfg.ArrivalRadius) {
		return component.BossIdle
	}
	return component.BossMoveToEnd
}

func (s *BossSystem) exitMoveToEnd(b *boss) {
	if hb := s.hitbox(b, entity.HitboxContact); hb != nil {
		hb.Deactivate()
	}
	s.trigger(b, cue.BossDashEnd)
}

func (s *BossSystem) advanceIdle(b *boss, _ float64) component.BossStateID {
	if !common.Elapsed(b.rt.Payload.Elapsed, b.cfg.IdleDuration) {
		return component.BossIdle
	}
	if b.rt.Phase > 1 {
		return component.BossMoveToStart
	}
	return component.BossChase
}

// enterDead disarms everything the boss owns and schedules its removal. The
// attach system cleans up the parts once the boss is gone.
func (s *BossSystem) enterDead(b *boss) {
	s.cancelSwing(b)
	for _, id := range b.rt.Hitboxes {
		if hb, ok := ecs.Get(b.w, ecs.Entity(id), component.HitboxComponent.Kind()); ok {
			hb.Deactivate()
		}
	}
	ecs.ForEach2(b.w, component.BossPartComponent.Kind(), component.HurtboxComponent.Kind(), func(_ ecs.Entity, bp *component.BossPart, hurt *component.Hurtbox) {
		if ecs.Entity(bp.Owner) == b.e {
			hurt.Enabled = false
		}
	})
	_ = ecs.Add(b.w, b.e, component.TTLComponent.Kind(), &component.TTL{Seconds: b.cfg.DeathRemoveDelay})
	s.trigger(b, cue.BossDeath)
}
