package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
	"golang.org/x/time/rate"
)

// NewPlayer builds the player and its melee hitbox.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: %w", prefabs.ErrInvalidSpec)
	}
	e := ecs.CreateEntity(w)

	cfg := PlayerFromSpec(spec)
	stance := combat.NewBlockParryState(spec.Block.ParryWindow, spec.Block.Reduction)
	health := combat.NewHealthPool(spec.Health, spec.Invulnerability)
	health.OnDamage = func(_ *combat.HealthPool, evt combat.DamageEvent) {
		_ = ecs.Add(w, e, component.DamageKnockbackRequestComponent.Kind(), &component.DamageKnockback{
			Direction: evt.Knockback,
			Blocked:   stance.IsBlocking(),
		})
	}

	hitbox := ecs.CreateEntity(w)
	rt := &component.PlayerRuntime{
		LastMoveDir:  common.Right,
		AttackHitbox: uint64(hitbox),
		Limiter:      NewDebounce(spec.Debounce),
	}

	if err := addAll(
		func() error { return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: spec.Transform.Vec(), Facing: common.FacingRight})
		},
		func() error { return ecs.Add(w, e, component.PlayerComponent.Kind(), cfg) },
		func() error { return ecs.Add(w, e, component.PlayerRuntimeComponent.Kind(), rt) },
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.StaminaComponent.Kind(), combat.NewStaminaPool(spec.Stamina.Max, spec.Stamina.RegenRate, spec.Stamina.RegenDelay))
		},
		func() error { return ecs.Add(w, e, component.RecoveryComponent.Kind(), &combat.RecoveryGate{}) },
		func() error { return ecs.Add(w, e, component.StanceComponent.Kind(), stance) },
		func() error { return ecs.Add(w, e, component.HealthComponent.Kind(), health) },
		func() error {
			return ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{
				Size:    spec.Hurtbox.Size,
				Offset:  spec.Hurtbox.Offset,
				Faction: combat.FactionPlayer,
				Enabled: true,
			})
		},
		func() error {
			return ecs.Add(w, hitbox, component.TransformComponent.Kind(), &component.Transform{Position: spec.Transform.Vec()})
		},
		func() error {
			return ecs.Add(w, hitbox, component.AttachedComponent.Kind(), &component.Attached{
				Parent: uint64(e),
				Offset: spec.Attack.Hitbox.Offset,
				Mirror: true,
			})
		},
		func() error {
			return ecs.Add(w, hitbox, component.HitboxComponent.Kind(), &component.Hitbox{
				Owner:   uint64(e),
				Name:    "player_attack",
				Damage:  spec.Attack.Damage,
				Size:    spec.Attack.Hitbox.Size,
				Faction: combat.FactionPlayer,
			})
		},
	); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

// PlayerFromSpec maps tuning onto the controller config. Reload uses it to
// swap tuning without touching runtime state.
func PlayerFromSpec(spec *prefabs.PlayerSpec) *component.Player {
	return &component.Player{
		MoveSpeed:     spec.MoveSpeed,
		DodgeSpeed:    spec.DodgeSpeed,
		DodgeDuration: spec.DodgeDuration,
		Debounce:      spec.Debounce,
		Costs: component.ActionCosts{
			Attack:      spec.Costs.Attack,
			Dodge:       spec.Costs.Dodge,
			Throw:       spec.Costs.Throw,
			Block:       spec.Costs.Block,
			ParryRefund: spec.Costs.ParryRefund,
		},
		Recovery: component.RecoveryTimes{
			Attack:  spec.Recovery.Attack,
			Dodge:   spec.Recovery.Dodge,
			Throw:   spec.Recovery.Throw,
			Block:   spec.Recovery.Block,
			Hitstun: spec.Recovery.Hitstun,
		},
		Clips: component.ClipDurations{
			Attack: spec.Clips.Attack,
			Throw:  spec.Clips.Throw,
			Hit:    spec.Clips.Hit,
			Parry:  spec.Clips.Parry,
		},
		KnockbackFull:         spec.Knockback.Full,
		KnockbackBlock:        spec.Knockback.Block,
		KnockbackDuration:     spec.Knockback.Duration,
		AttackDamage:          spec.Attack.Damage,
		AttackHitStart:        spec.Attack.HitStart,
		AttackHitEnd:          spec.Attack.HitEnd,
		ThrowSpawnDelay:       spec.Throw.SpawnDelay,
		ProjectileSpeed:       spec.Throw.Speed,
		ProjectileMaxDistance: spec.Throw.MaxDistance,
		ProjectileDamage:      spec.Throw.Damage,
		ProjectileSize:        spec.Throw.Size,
		ProjectileOffset:      spec.Throw.Offset,
	}
}

// NewDebounce allows one action per interval with no burst.
func NewDebounce(seconds float64) *rate.Limiter {
	if seconds <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Duration(seconds*float64(time.Second))), 1)
}

// NewProjectile spawns a thrown projectile with its own hitbox.
func NewProjectile(w *ecs.World, owner ecs.Entity, cfg *component.Player, origin, dir common.Vec2) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addAll(
		func() error { return ecs.Add(w, e, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{}) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: origin, Facing: common.FacingToward(origin, origin.Add(dir))})
		},
		func() error {
			return ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
				Origin:      origin,
				Direction:   dir.Normalize(),
				Speed:       cfg.ProjectileSpeed,
				MaxDistance: cfg.ProjectileMaxDistance,
			})
		},
		func() error {
			return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{
				Owner:      uint64(owner),
				Name:       "projectile",
				Damage:     cfg.ProjectileDamage,
				Size:       cfg.ProjectileSize,
				Faction:    combat.FactionPlayer,
				Active:     true,
				Activation: uint64(e),
			})
		},
	); err != nil {
		return 0, fmt.Errorf("projectile: %w", err)
	}
	return e, nil
}
