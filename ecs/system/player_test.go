package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

func TestRapidDodgesOnlyFirstAccepted(t *testing.T) {
	r := newRig(t)
	r.input(component.InputEvent{Kind: component.InputMove, Move: common.V(1, 0)})
	for i := 0; i < 5; i++ {
		r.input(component.InputEvent{Kind: component.InputDodge})
	}
	r.step(1)

	assert.InDelta(t, 80, r.stamina(t).Current, 1e-9)
	assert.True(t, r.playerRuntime(t).Dodging())
	assert.Equal(t, 1, countCues(r.cues, cue.Dodge))

	// Still mid-dodge after the debounce window has passed.
	r.input(component.InputEvent{Kind: component.InputDodge})
	r.step(6)
	assert.InDelta(t, 80, r.stamina(t).Current, 1e-9)
}

func TestDodgeNeedsDirectionAndGrantsInvulnerability(t *testing.T) {
	r := newRig(t)
	r.input(component.InputEvent{Kind: component.InputDodge})
	r.step(1)
	assert.False(t, r.playerRuntime(t).Dodging())
	assert.InDelta(t, 100, r.stamina(t).Current, 1e-9)

	r.input(
		component.InputEvent{Kind: component.InputMove, Move: common.V(0, -1)},
		component.InputEvent{Kind: component.InputDodge},
	)
	r.step(1)
	rt := r.playerRuntime(t)
	require.True(t, rt.Dodging())
	assert.True(t, rt.Move.IsZero())
	assert.True(t, r.playerHealth(t).IsInvulnerable())

	// The dodge ends on its own and movement resumes from the held input.
	r.step(61)
	assert.False(t, rt.Dodging())
	assert.Equal(t, common.V(0, -1), rt.Move)
}

func TestGuardedHitTiers(t *testing.T) {
	cases := []struct {
		name       string
		waitTicks  int
		wantHealth float64
		wantStance combat.Stance
		wantParry  bool
	}{
		{name: "inside parry window", waitTicks: 5, wantHealth: 100, wantStance: combat.StanceParrying, wantParry: true},
		{name: "window closed", waitTicks: 29, wantHealth: 90, wantStance: combat.StanceBlocking},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			r.input(component.InputEvent{Kind: component.InputBlockPressed})
			r.step(1 + tc.waitTicks)

			r.strike(t, "slash_left")
			r.step(1)

			assert.InDelta(t, tc.wantHealth, r.playerHealth(t).Current, 1e-9)
			assert.Equal(t, tc.wantStance, r.stance(t).State())
			rt := r.playerRuntime(t)
			assert.Equal(t, tc.wantParry, rt.ParryClip.Playing)
			assert.False(t, rt.Hit.Playing, "a guarded hit never cancels actions")

			if tc.wantParry {
				assert.False(t, rt.KnockedBack())
				assert.InDelta(t, 95, r.stamina(t).Current, 1e-9)
				assert.True(t, ecs.Has(r.w, r.boss, component.CounteredComponent.Kind()))
				r.step(1)
				assert.False(t, ecs.Has(r.w, r.boss, component.CounteredComponent.Kind()))
				assert.InDelta(t, 20, r.bossStagger(t).Current, 0.1)
				return
			}
			require.True(t, rt.KnockedBack())
			cfg, _ := ecs.Get(r.w, r.player, component.PlayerComponent.Kind())
			assert.InDelta(t, cfg.KnockbackBlock, rt.Knockback.Speed*rt.Knockback.Duration, 1e-9)
		})
	}
}

func TestUnguardedHitCancelsActions(t *testing.T) {
	r := newRig(t)
	r.input(
		component.InputEvent{Kind: component.InputMove, Move: common.V(1, 0)},
		component.InputEvent{Kind: component.InputAttack},
	)
	r.step(1)
	rt := r.playerRuntime(t)
	require.True(t, rt.Attack.Playing)

	r.strike(t, "ram")
	r.step(1)

	assert.InDelta(t, 80, r.playerHealth(t).Current, 1e-9)
	assert.False(t, rt.Attack.Playing)
	assert.True(t, rt.Hit.Playing)
	assert.True(t, rt.KnockedBack())
	cfg, _ := ecs.Get(r.w, r.player, component.PlayerComponent.Kind())
	assert.InDelta(t, cfg.KnockbackFull, rt.Knockback.Speed*rt.Knockback.Duration, 1e-9)

	r.input(component.InputEvent{Kind: component.InputThrow})
	r.step(1)
	assert.False(t, rt.Throw.Playing)

	// Invulnerable right after the hit.
	r.strike(t, "ram")
	r.step(1)
	assert.InDelta(t, 80, r.playerHealth(t).Current, 1e-9)
}

func TestPlayerAttackHitWindow(t *testing.T) {
	r := newRig(t)
	r.input(component.InputEvent{Kind: component.InputAttack})
	r.step(1)
	rt := r.playerRuntime(t)
	hb, ok := ecs.Get(r.w, ecs.Entity(rt.AttackHitbox), component.HitboxComponent.Kind())
	require.True(t, ok)

	r.step(2)
	assert.False(t, hb.Active)
	r.step(9)
	assert.True(t, hb.Active)
	first := hb.Activation
	r.step(10)
	assert.False(t, hb.Active)
	r.step(20)
	assert.False(t, rt.Attack.Playing)
	assert.Equal(t, first, hb.Activation)
}

func TestThrowSpawnsProjectileThatExpires(t *testing.T) {
	r := newRig(t)
	r.input(
		component.InputEvent{Kind: component.InputMove, Move: common.V(1, 0)},
		component.InputEvent{Kind: component.InputMove, Move: common.Zero},
		component.InputEvent{Kind: component.InputThrow},
	)
	r.step(1)
	assert.Equal(t, 0, ecs.Count(r.w, component.ProjectileComponent.Kind()))

	r.step(12)
	require.Equal(t, 1, ecs.Count(r.w, component.ProjectileComponent.Kind()))
	_, proj, _ := ecs.First(r.w, component.ProjectileComponent.Kind())
	assert.Equal(t, common.V(1, 0), proj.Direction)

	r.step(100)
	assert.Equal(t, 0, ecs.Count(r.w, component.ProjectileComponent.Kind()))
}

func TestProjectileBreaksOnBossPart(t *testing.T) {
	r := newRig(t)
	r.input(component.InputEvent{Kind: component.InputThrow})
	r.step(13)
	pe, _, ok := ecs.First(r.w, component.ProjectileComponent.Kind())
	require.True(t, ok)

	limb := r.limb(t, common.FacingLeft)
	r.overlaps.Push(ecs.Overlap{Hitbox: pe, Hurtbox: limb})
	r.step(1)

	assert.False(t, ecs.IsAlive(r.w, pe))
	h, _ := ecs.Get(r.w, limb, component.HealthComponent.Kind())
	assert.InDelta(t, h.Max-10, h.Current, 1e-9)
	assert.InDelta(t, 90, r.bossHealth(t).Current, 1e-9)
}

func TestPlayerDeathIsTerminal(t *testing.T) {
	r := newRig(t)
	r.playerHealth(t).Current = 10
	r.strike(t, "ram")
	r.step(1)

	// Dead on the killing tick, with no hit reaction.
	rt := r.playerRuntime(t)
	assert.True(t, rt.Dead)
	assert.Zero(t, countCues(r.cues, cue.Hit))
	assert.False(t, rt.Hit.Playing)
	assert.False(t, rt.KnockedBack())
	assert.False(t, r.playerRecovery(t).IsLocked())

	r.step(1)
	assert.True(t, rt.Velocity.IsZero())
	hurt, _ := ecs.Get(r.w, r.player, component.HurtboxComponent.Kind())
	assert.False(t, hurt.Enabled)
	assert.Equal(t, 1, countCues(r.cues, cue.Death))

	r.input(component.InputEvent{Kind: component.InputAttack})
	r.step(1)
	assert.False(t, rt.Attack.Playing)
}

func TestBlockReleaseOnlyHonoursDeath(t *testing.T) {
	r := newRig(t)
	r.input(component.InputEvent{Kind: component.InputBlockPressed})
	r.step(1)
	require.True(t, r.stance(t).IsBlocking())

	// Released inside the debounce window and while recovery is locked.
	r.input(component.InputEvent{Kind: component.InputBlockReleased})
	r.step(1)
	assert.Equal(t, combat.StanceIdle, r.stance(t).State())
	assert.Equal(t, 1, countCues(r.cues, cue.BlockEnd))
}

func TestPositionClampedToArena(t *testing.T) {
	r := newRig(t)
	r.input(component.InputEvent{Kind: component.InputMove, Move: common.V(-1, 0)})
	r.step(300)

	tr, _ := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	_, arena, _ := ecs.First(r.w, component.ArenaComponent.Kind())
	assert.InDelta(t, arena.Bounds.X, tr.Position.X, 1e-9)
	assert.Equal(t, common.FacingLeft, tr.Facing)
}

func countCues(rec *cue.Recorder, name cue.Name) int {
	n := 0
	for _, evt := range rec.Events {
		if evt.Name == name {
			n++
		}
	}
	return n
}
