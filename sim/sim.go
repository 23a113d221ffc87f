// Package sim wires the combat systems into a fixed-step simulation that a
// shell (the ebiten game, the replay runner, tests) drives tick by tick.
package sim

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/entity"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/prefabs"
)

// FixedDt is the gameplay tick length.
const FixedDt = 1.0 / 60.0

var (
	ErrMissingPlayer = errors.New("missing player spec")
	ErrMissingBoss   = errors.New("missing boss spec")
	ErrNoDashLanes   = errors.New("arena has no dash lanes")
	ErrInvalidSpec   = prefabs.ErrInvalidSpec
	ErrUnknownTuning = errors.New("unknown tuning file")
)

type Options struct {
	Player *prefabs.PlayerSpec
	Boss   *prefabs.BossSpec
	Arena  *prefabs.ArenaSpec

	Log  logrus.FieldLogger
	Cues cue.Sink
	// Overlaps is an extra collision source merged with the built-in
	// physics world and injected overlaps.
	Overlaps ecs.OverlapSource
	// Observe receives per-system timings.
	Observe func(system string, took time.Duration)
}

// DefaultOptions loads the tuning files (disk overrides first, then the
// embedded copies).
func DefaultOptions() (Options, error) {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return Options{}, err
	}
	boss, err := prefabs.LoadBossSpec()
	if err != nil {
		return Options{}, err
	}
	arena, err := prefabs.LoadArenaSpec()
	if err != nil {
		return Options{}, err
	}
	return Options{Player: player, Boss: boss, Arena: arena}, nil
}

// Validate reports setup faults before any entity is built.
func (o Options) Validate() error {
	switch {
	case o.Player == nil:
		return fmt.Errorf("sim: validate: %w", ErrMissingPlayer)
	case o.Boss == nil:
		return fmt.Errorf("sim: validate: %w", ErrMissingBoss)
	case o.Arena == nil || len(o.Arena.Lanes) == 0:
		return fmt.Errorf("sim: validate: %w", ErrNoDashLanes)
	}
	if err := o.Player.Validate(); err != nil {
		return fmt.Errorf("sim: validate player: %w", err)
	}
	if err := o.Boss.Validate(); err != nil {
		return fmt.Errorf("sim: validate boss: %w", err)
	}
	if o.Arena.Bounds.Width <= 0 || o.Arena.Bounds.Height <= 0 {
		return fmt.Errorf("sim: validate arena: %w: bounds must have area", ErrInvalidSpec)
	}
	return nil
}

type Simulation struct {
	World  *ecs.World
	Player ecs.Entity
	Boss   ecs.Entity
	Arena  ecs.Entity

	// Emitter publishes every combat event; metrics and logs subscribe.
	Emitter *combat.Emitter

	log       logrus.FieldLogger
	opts      Options
	scheduler *ecs.Scheduler
	actions   *system.PlayerActions
	boss      *system.BossSystem
	physics   *ecs.PhysicsWorld
	injected  *ecs.ManualOverlaps
}

func New(opts Options) (*Simulation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Cues == nil {
		opts.Cues = cue.LogSink{Log: opts.Log}
	}

	script, err := system.LoadBossScript(opts.Boss.AttackScript)
	if err != nil {
		return nil, fmt.Errorf("sim: boss script: %w", err)
	}

	w := ecs.NewWorld()
	arena, err := entity.NewArena(w, opts.Arena)
	if err != nil {
		return nil, fmt.Errorf("sim: arena: %w", err)
	}
	player, err := entity.NewPlayer(w, opts.Player)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	boss, err := entity.NewBoss(w, opts.Boss)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Simulation{
		World:    w,
		Player:   player,
		Boss:     boss,
		Arena:    arena,
		Emitter:  &combat.Emitter{},
		log:      opts.Log,
		opts:     opts,
		actions:  system.NewPlayerActions(opts.Log, opts.Cues),
		boss:     system.NewBossSystem(opts.Log, opts.Cues, script),
		physics:  ecs.NewPhysicsWorld(),
		injected: &ecs.ManualOverlaps{},
	}

	sources := ecs.MultiSource{s.physics, s.injected}
	if opts.Overlaps != nil {
		sources = append(sources, opts.Overlaps)
	}

	// Input first, then the player and boss state machines, then hit
	// resolution against post-movement positions.
	s.scheduler = ecs.NewScheduler(
		system.NewInputSystem(s.actions),
		system.NewPlayerControllerSystem(s.actions),
		system.NewProjectileSystem(),
		s.boss,
		system.NewAttachSystem(),
		system.NewPhysicsSystem(s.physics, sources),
		system.NewCombatSystem(combat.NewResolver(s.Emitter), s.actions, s.boss, opts.Log),
		system.NewTTLSystem(),
	)
	s.scheduler.Observe = opts.Observe

	s.log.WithFields(logrus.Fields{
		"player": player.String(),
		"boss":   boss.String(),
		"lanes":  len(opts.Arena.Lanes),
	}).Info("sim: ready")
	return s, nil
}

// Step advances one tick of dt seconds. Non-positive dt is ignored.
func (s *Simulation) Step(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	s.World.Dt = dt
	s.World.Time += dt
	s.World.Tick++
	s.scheduler.Update(s.World)
}

// Apply queues input for the next Step. It reports false once the player is
// gone.
func (s *Simulation) Apply(in ...Input) bool {
	q, ok := ecs.Get(s.World, s.Player, component.InputComponent.Kind())
	if !ok {
		return false
	}
	q.Queue = append(q.Queue, in...)
	return true
}

// Complete reports that an animation clip finished.
func (s *Simulation) Complete(clip Clip) {
	switch clip {
	case ClipAttack:
		s.actions.OnAttackComplete(s.World, s.Player)
	case ClipDodge:
		s.actions.OnDodgeComplete(s.World, s.Player)
	case ClipThrow:
		s.actions.OnThrowComplete(s.World, s.Player)
	case ClipHit:
		s.actions.OnHitComplete(s.World, s.Player)
	case ClipParry:
		s.actions.OnParryEnd(s.World, s.Player)
	}
}

// InjectOverlap reports a hitbox touching a hurtbox on the next Step, for
// external collision engines and tests.
func (s *Simulation) InjectOverlap(hitbox, hurtbox ecs.Entity) {
	s.injected.Push(ecs.Overlap{Hitbox: hitbox, Hurtbox: hurtbox})
}

// Physics is the collision world, for debug drawing.
func (s *Simulation) Physics() *ecs.PhysicsWorld { return s.physics }

// BossHitbox returns one of the boss's named hitboxes while it exists.
func (s *Simulation) BossHitbox(name string) (ecs.Entity, bool) {
	rt, ok := ecs.Get(s.World, s.Boss, component.BossRuntimeComponent.Kind())
	if !ok {
		return 0, false
	}
	id, ok := rt.Hitboxes[name]
	if !ok || !ecs.IsAlive(s.World, ecs.Entity(id)) {
		return 0, false
	}
	return ecs.Entity(id), true
}

// Limb returns the boss limb on side while it is intact.
func (s *Simulation) Limb(side common.Facing) (ecs.Entity, bool) {
	var found ecs.Entity
	ecs.ForEach(s.World, component.BossPartComponent.Kind(), func(e ecs.Entity, bp *component.BossPart) {
		if ecs.Entity(bp.Owner) == s.Boss && bp.Kind == component.PartLimb && bp.Side == side {
			found = e
		}
	})
	return found, found.Valid()
}

// Reload re-reads one tuning file and swaps the matching config. Runtime
// state (health, stamina, boss state) is left alone. On error the old tuning
// stays in place.
func (s *Simulation) Reload(name string) error {
	switch {
	case name == prefabs.PlayerFile:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return fmt.Errorf("sim: reload %s: %w", name, err)
		}
		if cfg, ok := ecs.Get(s.World, s.Player, component.PlayerComponent.Kind()); ok {
			*cfg = *entity.PlayerFromSpec(spec)
		}
		s.opts.Player = spec
	case name == prefabs.BossFile:
		spec, err := prefabs.LoadBossSpec()
		if err != nil {
			return fmt.Errorf("sim: reload %s: %w", name, err)
		}
		script, err := system.LoadBossScript(spec.AttackScript)
		if err != nil {
			return fmt.Errorf("sim: reload %s: %w", name, err)
		}
		if cfg, ok := ecs.Get(s.World, s.Boss, component.BossComponent.Kind()); ok {
			*cfg = *entity.BossFromSpec(spec)
		}
		if st, ok := ecs.Get(s.World, s.Boss, component.StaggerComponent.Kind()); ok {
			st.Max, st.DecayRate = spec.Stagger.Max, spec.Stagger.Decay
		}
		s.boss.Script = script
		s.opts.Boss = spec
	case name == prefabs.ArenaFile:
		spec, err := prefabs.LoadArenaSpec()
		if err != nil {
			return fmt.Errorf("sim: reload %s: %w", name, err)
		}
		if len(spec.Lanes) == 0 {
			return fmt.Errorf("sim: reload %s: %w", name, ErrNoDashLanes)
		}
		if arena, ok := ecs.Get(s.World, s.Arena, component.ArenaComponent.Kind()); ok {
			*arena = *entity.ArenaFromSpec(spec)
		}
		s.opts.Arena = spec
	case strings.HasPrefix(name, "scripts/"):
		if !strings.HasSuffix(s.opts.Boss.AttackScript, strings.TrimPrefix(name, "scripts/")) {
			return nil
		}
		script, err := system.LoadBossScript(s.opts.Boss.AttackScript)
		if err != nil {
			return fmt.Errorf("sim: reload %s: %w", name, err)
		}
		s.boss.Script = script
	default:
		return fmt.Errorf("sim: reload %s: %w", name, ErrUnknownTuning)
	}

	s.log.WithField("file", name).Info("sim: tuning reloaded")
	return nil
}
