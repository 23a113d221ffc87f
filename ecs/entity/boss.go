package entity

import (
	"fmt"

	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

// Hitbox names on a boss.
const (
	HitboxSlashLeft  = "slash_left"
	HitboxSlashRight = "slash_right"
	HitboxRam        = "ram"
	HitboxContact    = "contact"
)

// SlashHitbox returns the slash hitbox name for a side.
func SlashHitbox(side common.Facing) string {
	if side == common.FacingLeft {
		return HitboxSlashLeft
	}
	return HitboxSlashRight
}

// NewBoss builds the boss, one limb per side, the main body and the attack
// hitboxes. The body hurtbox starts disabled.
func NewBoss(w *ecs.World, spec *prefabs.BossSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("boss: %w", prefabs.ErrInvalidSpec)
	}
	e := ecs.CreateEntity(w)
	pos := spec.Transform.Vec()

	health := combat.NewHealthPool(spec.Health, 0)
	health.Floor = 1

	rt := &component.BossRuntime{
		Phase:       1,
		State:       component.BossChase,
		SinceAttack: spec.AttackInterval,
		Hitboxes:    make(map[string]uint64),
	}

	if err := addAll(
		func() error { return ecs.Add(w, e, component.BossTagComponent.Kind(), &component.BossTag{}) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Facing: common.FacingLeft})
		},
		func() error { return ecs.Add(w, e, component.BossComponent.Kind(), BossFromSpec(spec)) },
		func() error { return ecs.Add(w, e, component.BossRuntimeComponent.Kind(), rt) },
		func() error { return ecs.Add(w, e, component.HealthComponent.Kind(), health) },
		func() error {
			return ecs.Add(w, e, component.StaggerComponent.Kind(), combat.NewStaggerMeter(spec.Stagger.Max, spec.Stagger.Decay))
		},
	); err != nil {
		return 0, fmt.Errorf("boss: %w", err)
	}

	slash := spec.Attacks["slash"]
	ram := spec.Attacks["ram"]
	boxes := []struct {
		name   string
		damage float64
		size   common.Vec2
		offset common.Vec2
		mirror bool
	}{
		{HitboxSlashLeft, slash.Damage, slash.Size, slash.Offset.MirrorX(true), false},
		{HitboxSlashRight, slash.Damage, slash.Size, slash.Offset, false},
		{HitboxRam, ram.Damage, ram.Size, ram.Offset, true},
		{HitboxContact, spec.Dash.ContactDamage, spec.Dash.ContactSize, common.Zero, false},
	}
	for _, b := range boxes {
		hb, err := newAttachedHitbox(w, e, pos, b.name, b.damage, b.size, b.offset, b.mirror)
		if err != nil {
			return 0, fmt.Errorf("boss: %s: %w", b.name, err)
		}
		rt.Hitboxes[b.name] = uint64(hb)
	}

	for _, side := range []common.Facing{common.FacingLeft, common.FacingRight} {
		offset := spec.Limbs.Offset.MirrorX(side == common.FacingLeft)
		part := &component.BossPart{
			Owner:  uint64(e),
			Kind:   component.PartLimb,
			Side:   side,
			Hitbox: rt.Hitboxes[SlashHitbox(side)],
		}
		if _, err := newPart(w, e, pos, part, spec.Limbs, offset, true); err != nil {
			return 0, fmt.Errorf("boss: limb %s: %w", side, err)
		}
	}

	body, err := newPart(w, e, pos, &component.BossPart{Owner: uint64(e), Kind: component.PartBody}, spec.Body, common.Zero, false)
	if err != nil {
		return 0, fmt.Errorf("boss: body: %w", err)
	}
	rt.Body = uint64(body)

	return e, nil
}

// BossFromSpec maps tuning onto the boss config.
func BossFromSpec(spec *prefabs.BossSpec) *component.Boss {
	attacks := make(map[component.AttackKind]component.BossAttack, len(spec.Attacks))
	for name, a := range spec.Attacks {
		attacks[component.AttackKind(name)] = component.BossAttack{
			Damage:  a.Damage,
			Windup:  a.Windup,
			Active:  a.Active,
			Recover: a.Recover,
			Size:    a.Size,
			Offset:  a.Offset,
		}
	}
	return &component.Boss{
		MoveSpeed:          spec.MoveSpeed,
		AttackRange:        spec.AttackRange,
		FlankOffset:        spec.FlankOffset,
		AttackInterval:     spec.AttackInterval,
		StunDuration:       spec.StunDuration,
		IdleDuration:       spec.IdleDuration,
		DashStartMult:      spec.Dash.StartMultiplier,
		DashEndMult:        spec.Dash.EndMultiplier,
		ArrivalRadius:      spec.Dash.ArrivalRadius,
		LimbBreakThreshold: spec.LimbBreakThreshold,
		DeathRemoveDelay:   spec.DeathRemoveDelay,
		ParryStagger:       spec.ParryStagger,
		ContactDamage:      spec.Dash.ContactDamage,
		Attacks:            attacks,
		AttackScript:       spec.AttackScript,
	}
}

func newAttachedHitbox(w *ecs.World, owner ecs.Entity, pos common.Vec2, name string, damage float64, size, offset common.Vec2, mirror bool) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	err := addAll(
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos.Add(offset)})
		},
		func() error {
			return ecs.Add(w, e, component.AttachedComponent.Kind(), &component.Attached{Parent: uint64(owner), Offset: offset, Mirror: mirror})
		},
		func() error {
			return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{
				Owner:   uint64(owner),
				Name:    name,
				Damage:  damage,
				Size:    size,
				Faction: combat.FactionBoss,
			})
		},
	)
	return e, err
}

func newPart(w *ecs.World, owner ecs.Entity, pos common.Vec2, part *component.BossPart, spec prefabs.PartSpec, offset common.Vec2, enabled bool) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	err := addAll(
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos.Add(offset)})
		},
		func() error {
			return ecs.Add(w, e, component.AttachedComponent.Kind(), &component.Attached{Parent: uint64(owner), Offset: offset})
		},
		func() error { return ecs.Add(w, e, component.BossPartComponent.Kind(), part) },
		func() error { return ecs.Add(w, e, component.HealthComponent.Kind(), combat.NewHealthPool(spec.Health, 0)) },
		func() error {
			return ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{
				Size:    spec.Size,
				Faction: combat.FactionBoss,
				Enabled: enabled,
			})
		},
	)
	return e, err
}

func addAll(adds ...func() error) error {
	for _, add := range adds {
		if err := add(); err != nil {
			return err
		}
	}
	return nil
}
