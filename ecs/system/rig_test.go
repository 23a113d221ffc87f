package system

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/entity"
	"github.com/milk9111/bossfight/prefabs"
)

const testDt = 1.0 / 60.0

// rig is a full world without the collision engine: overlaps are pushed by
// hand so tests decide exactly what touches what.
type rig struct {
	w        *ecs.World
	player   ecs.Entity
	boss     ecs.Entity
	actions  *PlayerActions
	bossSys  *BossSystem
	overlaps *ecs.ManualOverlaps
	cues     *cue.Recorder
	sched    *ecs.Scheduler
}

func newRig(t *testing.T) *rig {
	t.Helper()

	ps, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	bs, err := prefabs.LoadBossSpec()
	require.NoError(t, err)
	as, err := prefabs.LoadArenaSpec()
	require.NoError(t, err)

	w := ecs.NewWorld()
	_, err = entity.NewArena(w, as)
	require.NoError(t, err)
	player, err := entity.NewPlayer(w, ps)
	require.NoError(t, err)
	boss, err := entity.NewBoss(w, bs)
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	rec := &cue.Recorder{}
	actions := NewPlayerActions(log, rec)
	bossSys := NewBossSystem(log, rec, nil)
	manual := &ecs.ManualOverlaps{}

	sched := ecs.NewScheduler(
		NewInputSystem(actions),
		NewPlayerControllerSystem(actions),
		NewProjectileSystem(),
		bossSys,
		NewAttachSystem(),
		NewPhysicsSystem(nil, manual),
		NewCombatSystem(combat.NewResolver(nil), actions, bossSys, log),
		NewTTLSystem(),
	)

	return &rig{
		w:        w,
		player:   player,
		boss:     boss,
		actions:  actions,
		bossSys:  bossSys,
		overlaps: manual,
		cues:     rec,
		sched:    sched,
	}
}

func (r *rig) step(n int) {
	for i := 0; i < n; i++ {
		r.w.Dt = testDt
		r.w.Time += testDt
		r.w.Tick++
		r.sched.Update(r.w)
	}
}

func (r *rig) input(events ...component.InputEvent) {
	in, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	in.Queue = append(in.Queue, events...)
}

func (r *rig) playerRuntime(t *testing.T) *component.PlayerRuntime {
	t.Helper()
	rt, ok := ecs.Get(r.w, r.player, component.PlayerRuntimeComponent.Kind())
	require.True(t, ok)
	return rt
}

func (r *rig) playerHealth(t *testing.T) *combat.HealthPool {
	t.Helper()
	h, ok := ecs.Get(r.w, r.player, component.HealthComponent.Kind())
	require.True(t, ok)
	return h
}

func (r *rig) stance(t *testing.T) *combat.BlockParryState {
	t.Helper()
	s, ok := ecs.Get(r.w, r.player, component.StanceComponent.Kind())
	require.True(t, ok)
	return s
}

func (r *rig) playerRecovery(t *testing.T) *combat.RecoveryGate {
	t.Helper()
	g, ok := ecs.Get(r.w, r.player, component.RecoveryComponent.Kind())
	require.True(t, ok)
	return g
}

func (r *rig) stamina(t *testing.T) *combat.StaminaPool {
	t.Helper()
	s, ok := ecs.Get(r.w, r.player, component.StaminaComponent.Kind())
	require.True(t, ok)
	return s
}

func (r *rig) bossRuntime(t *testing.T) *component.BossRuntime {
	t.Helper()
	rt, ok := ecs.Get(r.w, r.boss, component.BossRuntimeComponent.Kind())
	require.True(t, ok)
	return rt
}

func (r *rig) bossStagger(t *testing.T) *combat.StaggerMeter {
	t.Helper()
	s, ok := ecs.Get(r.w, r.boss, component.StaggerComponent.Kind())
	require.True(t, ok)
	return s
}

func (r *rig) bossHealth(t *testing.T) *combat.HealthPool {
	t.Helper()
	h, ok := ecs.Get(r.w, r.boss, component.HealthComponent.Kind())
	require.True(t, ok)
	return h
}

func (r *rig) bossHitbox(t *testing.T, name string) (ecs.Entity, *component.Hitbox) {
	t.Helper()
	id, ok := r.bossRuntime(t).Hitboxes[name]
	require.True(t, ok, "hitbox %s", name)
	hb, ok := ecs.Get(r.w, ecs.Entity(id), component.HitboxComponent.Kind())
	require.True(t, ok)
	return ecs.Entity(id), hb
}

func (r *rig) limb(t *testing.T, side common.Facing) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	ecs.ForEach(r.w, component.BossPartComponent.Kind(), func(e ecs.Entity, bp *component.BossPart) {
		if bp.Kind == component.PartLimb && bp.Side == side {
			found = e
		}
	})
	require.True(t, found.Valid(), "limb %s", side)
	return found
}

// strike makes a boss hitbox land on the player this tick as a fresh swing.
func (r *rig) strike(t *testing.T, name string) {
	t.Helper()
	e, hb := r.bossHitbox(t, name)
	hb.Deactivate()
	hb.Activate()
	r.overlaps.Push(ecs.Overlap{Hitbox: e, Hurtbox: r.player})
}

// playerBlade creates a standalone player hitbox, one per call, so each
// strike is its own activation.
func (r *rig) playerBlade(t *testing.T, damage float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(r.w)
	require.NoError(t, ecs.Add(r.w, e, component.HitboxComponent.Kind(), &component.Hitbox{
		Owner:      uint64(r.player),
		Name:       "test_blade",
		Damage:     damage,
		Size:       common.V(1, 1),
		Faction:    combat.FactionPlayer,
		Active:     true,
		Activation: uint64(e),
	}))
	return e
}
