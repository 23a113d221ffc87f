package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

type fixture struct {
	*Simulation
	cues   *cue.Recorder
	events []combat.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	opts, err := DefaultOptions()
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	rec := &cue.Recorder{}
	opts.Log = log
	opts.Cues = rec

	s, err := New(opts)
	require.NoError(t, err)
	f := &fixture{Simulation: s, cues: rec}
	s.Emitter.Subscribe(func(evt combat.Event) { f.events = append(f.events, evt) })
	return f
}

func (f *fixture) steps(n int) {
	for i := 0; i < n; i++ {
		f.Step(FixedDt)
	}
}

// blade is a one-off player hitbox; every call is a separate swing.
func (f *fixture) blade(t *testing.T, damage float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(f.World)
	require.NoError(t, ecs.Add(f.World, e, component.HitboxComponent.Kind(), &component.Hitbox{
		Owner:      uint64(f.Player),
		Name:       "blade",
		Damage:     damage,
		Size:       common.V(1, 1),
		Faction:    combat.FactionPlayer,
		Active:     true,
		Activation: uint64(e),
	}))
	return e
}

// bossStrike lands a fresh swing of the named boss hitbox on the player.
func (f *fixture) bossStrike(t *testing.T, name string) {
	t.Helper()
	e, ok := f.BossHitbox(name)
	require.True(t, ok)
	hb, _ := ecs.Get(f.World, e, component.HitboxComponent.Kind())
	hb.Deactivate()
	hb.Activate()
	f.InjectOverlap(e, f.Player)
}

func (f *fixture) has(typ combat.EventType) bool {
	for _, evt := range f.events {
		if evt.Type == typ {
			return true
		}
	}
	return false
}

func TestNewRejectsBadSetup(t *testing.T) {
	base, err := DefaultOptions()
	require.NoError(t, err)

	weakPlayer := *base.Player
	weakPlayer.Health = 0
	noLanes := *base.Arena
	noLanes.Lanes = nil

	cases := []struct {
		name   string
		mutate func(o *Options)
		want   error
	}{
		{name: "missing player", mutate: func(o *Options) { o.Player = nil }, want: ErrMissingPlayer},
		{name: "missing boss", mutate: func(o *Options) { o.Boss = nil }, want: ErrMissingBoss},
		{name: "missing arena", mutate: func(o *Options) { o.Arena = nil }, want: ErrNoDashLanes},
		{name: "no dash lanes", mutate: func(o *Options) { o.Arena = &noLanes }, want: ErrNoDashLanes},
		{name: "invalid player", mutate: func(o *Options) { o.Player = &weakPlayer }, want: ErrInvalidSpec},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := base
			tc.mutate(&opts)
			_, err := New(opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, strings.HasPrefix(err.Error(), "sim: "), err.Error())
		})
	}
}

func TestNewFailsOnBrokenAttackScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "boss_attack.tengo"), []byte("attack := ("), 0o644))
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })

	opts, err := DefaultOptions()
	require.NoError(t, err)
	_, err = New(opts)
	assert.ErrorContains(t, err, "sim: boss script")
}

func TestRapidDodgesCostOnce(t *testing.T) {
	f := newFixture(t)
	f.Apply(Move(common.V(1, 0)), DodgePressed, DodgePressed, DodgePressed, DodgePressed, DodgePressed)
	f.steps(1)

	snap := f.Snapshot()
	assert.InDelta(t, 80, snap.Player.Stamina, 1e-9)
	assert.True(t, snap.Player.Dodging)
	assert.Equal(t, 1, f.cues.Count(cue.Dodge))
}

func TestBlockedHitTakesHalfDamageAndSmallKnockback(t *testing.T) {
	f := newFixture(t)
	f.Apply(BlockPressed)
	f.steps(30)

	f.bossStrike(t, "slash_left")
	f.steps(1)

	snap := f.Snapshot()
	assert.InDelta(t, 90, snap.Player.Health, 1e-9)
	assert.Equal(t, combat.StanceBlocking.String(), snap.Player.Stance)
	assert.True(t, snap.Player.KnockedBack)
	assert.True(t, f.has(combat.EventBlocked))
	assert.Equal(t, 1, f.cues.Count(cue.BlockedHit))
	assert.Zero(t, f.cues.Count(cue.Hit), "a blocked hit does not interrupt")

	rt, _ := ecs.Get(f.World, f.Player, component.PlayerRuntimeComponent.Kind())
	cfg, _ := ecs.Get(f.World, f.Player, component.PlayerComponent.Kind())
	assert.InDelta(t, cfg.KnockbackBlock, rt.Knockback.Speed*rt.Knockback.Duration, 1e-9)
}

func TestParryWindowTiming(t *testing.T) {
	cases := []struct {
		name       string
		at         float64
		wantHealth float64
		wantStance combat.Stance
	}{
		{name: "lands at 0.1s", at: 0.1, wantHealth: 100, wantStance: combat.StanceParrying},
		{name: "lands at 0.5s", at: 0.5, wantHealth: 90, wantStance: combat.StanceBlocking},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.Apply(BlockPressed)
			f.steps(int(tc.at/FixedDt + 0.5))

			f.bossStrike(t, "slash_left")
			f.steps(1)

			snap := f.Snapshot()
			assert.InDelta(t, tc.wantHealth, snap.Player.Health, 1e-9)
			assert.Equal(t, tc.wantStance.String(), snap.Player.Stance)
			assert.Equal(t, tc.wantStance == combat.StanceParrying, f.has(combat.EventCountered))
		})
	}
}

func TestParryStaggersBoss(t *testing.T) {
	f := newFixture(t)
	f.Apply(BlockPressed)
	f.steps(3)
	f.bossStrike(t, "slash_left")
	f.steps(2)

	assert.InDelta(t, 20, f.Snapshot().Boss.Stagger, 0.1)
	assert.Equal(t, 1, f.cues.Count(cue.Parry))
}

func TestFiveLimbHitsThenStunForExactlyThreeSeconds(t *testing.T) {
	f := newFixture(t)
	limb, ok := f.Limb(common.FacingLeft)
	require.True(t, ok)

	for i := 0; i < 5; i++ {
		f.InjectOverlap(f.blade(t, 20), limb)
	}
	f.steps(1)
	snap := f.Snapshot()
	assert.InDelta(t, 100, snap.Boss.Stagger, 1e-9)
	assert.NotEqual(t, "stun", snap.Boss.State)

	f.steps(1)
	require.Equal(t, "stun", f.Snapshot().Boss.State)

	f.steps(179)
	assert.Equal(t, "stun", f.Snapshot().Boss.State)
	f.steps(1)
	snap = f.Snapshot()
	assert.Equal(t, "chase", snap.Boss.State)
	assert.Zero(t, snap.Boss.Stagger)
}

func TestMeleeLandsThroughCollisionWorld(t *testing.T) {
	f := newFixture(t)
	tr, _ := ecs.Get(f.World, f.Player, component.TransformComponent.Kind())
	tr.Position = common.V(3.5, 0)

	f.Apply(AttackPressed)
	f.steps(20)

	limb, ok := f.Limb(common.FacingLeft)
	require.True(t, ok)
	h, _ := ecs.Get(f.World, limb, component.HealthComponent.Kind())
	assert.InDelta(t, h.Max-20, h.Current, 1e-9)

	snap := f.Snapshot()
	assert.InDelta(t, 80, snap.Boss.Health, 1e-9)
	assert.InDelta(t, 20, snap.Boss.Stagger, 0.2)
	assert.Equal(t, 100.0, snap.Player.Health, "the boss slash is still winding up")
}

func TestPlayerDeathOutcome(t *testing.T) {
	f := newFixture(t)
	h, _ := ecs.Get(f.World, f.Player, component.HealthComponent.Kind())
	h.Current = 10

	f.bossStrike(t, "ram")
	f.steps(2)

	snap := f.Snapshot()
	assert.True(t, snap.Player.Dead)
	assert.Equal(t, "player_dead", snap.Outcome())
	assert.True(t, f.has(combat.EventDeath))

	require.True(t, f.Apply(AttackPressed))
	f.steps(1)
	assert.Zero(t, f.cues.Count(cue.Attack), "the dead take no actions")
}

func TestThrownProjectilesLeaveNothingQueued(t *testing.T) {
	f := newFixture(t)
	h, _ := ecs.Get(f.World, f.Player, component.HealthComponent.Kind())
	h.Max, h.Current = 1e6, 1e6

	seen := map[ecs.Entity]bool{}
	for i := 0; i < 5; i++ {
		require.True(t, f.Apply(ThrowPressed))
		for j := 0; j < 120; j++ {
			f.steps(1)
			if e, _, ok := ecs.First(f.World, component.ProjectileComponent.Kind()); ok {
				seen[e] = true
			}
		}
	}
	require.NotEmpty(t, seen)

	assert.Zero(t, ecs.Count(f.World, component.ProjectileComponent.Kind()))
	assert.Zero(t, f.World.Events().Len(), "destroyed events are consumed")
	for e := range seen {
		tracked, _ := f.Physics().Tracked(e)
		assert.False(t, tracked, "projectile %s still has a sensor", e)
	}
}

func TestCompleteEndsParryClip(t *testing.T) {
	f := newFixture(t)
	f.Apply(BlockPressed)
	f.steps(3)
	f.bossStrike(t, "slash_left")
	f.steps(1)
	require.Equal(t, combat.StanceParrying.String(), f.Snapshot().Player.Stance)

	f.Complete(ClipParry)
	assert.Equal(t, combat.StanceBlocking.String(), f.Snapshot().Player.Stance)
}

func TestReloadSwapsTuningOnly(t *testing.T) {
	f := newFixture(t)
	f.Apply(Move(common.V(1, 0)), DodgePressed)
	f.steps(1)

	raw, err := prefabs.Load(prefabs.PlayerFile)
	require.NoError(t, err)
	dir := t.TempDir()
	edited := strings.Replace(string(raw), "move_speed: 5\n", "move_speed: 7\n", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, prefabs.PlayerFile), []byte(edited), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, prefabs.BossFile), []byte("health: -1\n"), 0o644))
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })

	require.NoError(t, f.Reload(prefabs.PlayerFile))
	cfg, _ := ecs.Get(f.World, f.Player, component.PlayerComponent.Kind())
	assert.InDelta(t, 7, cfg.MoveSpeed, 1e-9)
	assert.InDelta(t, 80, f.Snapshot().Player.Stamina, 1e-9, "runtime state survives a reload")

	bossCfg, _ := ecs.Get(f.World, f.Boss, component.BossComponent.Kind())
	before := *bossCfg
	err = f.Reload(prefabs.BossFile)
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Equal(t, before.MoveSpeed, bossCfg.MoveSpeed)

	assert.ErrorIs(t, f.Reload("notes.yaml"), ErrUnknownTuning)
}
