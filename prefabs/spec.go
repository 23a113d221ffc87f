package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/bossfight/common"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const (
	PlayerFile = "player.yaml"
	BossFile   = "boss.yaml"
	ArenaFile  = "arena.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (t TransformSpec) Vec() common.Vec2 {
	return common.V(t.X, t.Y)
}

type BoxSpec struct {
	Size   common.Vec2 `yaml:"size"`
	Offset common.Vec2 `yaml:"offset"`
}

type StaminaSpec struct {
	Max        float64 `yaml:"max"`
	RegenRate  float64 `yaml:"regen_rate"`
	RegenDelay float64 `yaml:"regen_delay"`
}

type CostsSpec struct {
	Attack      float64 `yaml:"attack"`
	Dodge       float64 `yaml:"dodge"`
	Throw       float64 `yaml:"throw"`
	Block       float64 `yaml:"block"`
	ParryRefund float64 `yaml:"parry_refund"`
}

type RecoverySpec struct {
	Attack  float64 `yaml:"attack"`
	Dodge   float64 `yaml:"dodge"`
	Throw   float64 `yaml:"throw"`
	Block   float64 `yaml:"block"`
	Hitstun float64 `yaml:"hitstun"`
}

type BlockSpec struct {
	ParryWindow float64 `yaml:"parry_window"`
	Reduction   float64 `yaml:"reduction"`
}

type KnockbackSpec struct {
	Full     float64 `yaml:"full"`
	Block    float64 `yaml:"block"`
	Duration float64 `yaml:"duration"`
}

type ClipsSpec struct {
	Attack float64 `yaml:"attack"`
	Throw  float64 `yaml:"throw"`
	Hit    float64 `yaml:"hit"`
	Parry  float64 `yaml:"parry"`
}

type PlayerAttackSpec struct {
	Damage   float64 `yaml:"damage"`
	HitStart float64 `yaml:"hit_start"`
	HitEnd   float64 `yaml:"hit_end"`
	Hitbox   BoxSpec `yaml:"hitbox"`
}

type ThrowSpec struct {
	SpawnDelay  float64     `yaml:"spawn_delay"`
	Speed       float64     `yaml:"speed"`
	MaxDistance float64     `yaml:"max_distance"`
	Damage      float64     `yaml:"damage"`
	Offset      float64     `yaml:"offset"`
	Size        common.Vec2 `yaml:"size"`
}

type PlayerSpec struct {
	Name            string           `yaml:"name"`
	MoveSpeed       float64          `yaml:"move_speed"`
	DodgeSpeed      float64          `yaml:"dodge_speed"`
	DodgeDuration   float64          `yaml:"dodge_duration"`
	Debounce        float64          `yaml:"debounce"`
	Health          float64          `yaml:"health"`
	Invulnerability float64          `yaml:"invulnerability"`
	Stamina         StaminaSpec      `yaml:"stamina"`
	Costs           CostsSpec        `yaml:"costs"`
	Recovery        RecoverySpec     `yaml:"recovery"`
	Block           BlockSpec        `yaml:"block"`
	Knockback       KnockbackSpec    `yaml:"knockback"`
	Clips           ClipsSpec        `yaml:"clips"`
	Attack          PlayerAttackSpec `yaml:"attack"`
	Throw           ThrowSpec        `yaml:"throw"`
	Transform       TransformSpec    `yaml:"transform"`
	Hurtbox         BoxSpec          `yaml:"hurtbox"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects tunings the controller cannot run with.
func (s *PlayerSpec) Validate() error {
	switch {
	case s.Health <= 0:
		return fmt.Errorf("%w: player health must be positive", ErrInvalidSpec)
	case s.Stamina.Max <= 0:
		return fmt.Errorf("%w: player stamina max must be positive", ErrInvalidSpec)
	case s.DodgeDuration <= 0 || s.Knockback.Duration <= 0:
		return fmt.Errorf("%w: dodge and knockback durations must be positive", ErrInvalidSpec)
	case s.Block.ParryWindow < 0 || s.Block.Reduction < 0 || s.Block.Reduction > 1:
		return fmt.Errorf("%w: block reduction must be within [0,1]", ErrInvalidSpec)
	case s.Attack.HitEnd < s.Attack.HitStart:
		return fmt.Errorf("%w: attack hit window ends before it starts", ErrInvalidSpec)
	}
	return nil
}

type StaggerSpec struct {
	Max   float64 `yaml:"max"`
	Decay float64 `yaml:"decay"`
}

type DashSpec struct {
	StartMultiplier float64     `yaml:"start_multiplier"`
	EndMultiplier   float64     `yaml:"end_multiplier"`
	ArrivalRadius   float64     `yaml:"arrival_radius"`
	ContactDamage   float64     `yaml:"contact_damage"`
	ContactSize     common.Vec2 `yaml:"contact_size"`
}

type PartSpec struct {
	Health float64     `yaml:"health"`
	Size   common.Vec2 `yaml:"size"`
	Offset common.Vec2 `yaml:"offset"`
}

type AttackSpec struct {
	Damage  float64     `yaml:"damage"`
	Windup  float64     `yaml:"windup"`
	Active  float64     `yaml:"active"`
	Recover float64     `yaml:"recover"`
	Size    common.Vec2 `yaml:"size"`
	Offset  common.Vec2 `yaml:"offset"`
}

type BossSpec struct {
	Name               string                `yaml:"name"`
	MoveSpeed          float64               `yaml:"move_speed"`
	Health             float64               `yaml:"health"`
	Stagger            StaggerSpec           `yaml:"stagger"`
	AttackRange        float64               `yaml:"attack_range"`
	FlankOffset        float64               `yaml:"flank_offset"`
	AttackInterval     float64               `yaml:"attack_interval"`
	StunDuration       float64               `yaml:"stun_duration"`
	IdleDuration       float64               `yaml:"idle_duration"`
	Dash               DashSpec              `yaml:"dash"`
	LimbBreakThreshold int                   `yaml:"limb_break_threshold"`
	DeathRemoveDelay   float64               `yaml:"death_remove_delay"`
	ParryStagger       float64               `yaml:"parry_stagger"`
	AttackScript       string                `yaml:"attack_script"`
	Limbs              PartSpec              `yaml:"limbs"`
	Body               PartSpec              `yaml:"body"`
	Attacks            map[string]AttackSpec `yaml:"attacks"`
	Transform          TransformSpec         `yaml:"transform"`
}

func LoadBossSpec() (*BossSpec, error) {
	spec, err := LoadSpec[BossSpec](BossFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *BossSpec) Validate() error {
	switch {
	case s.Health <= 0 || s.Limbs.Health <= 0 || s.Body.Health <= 0:
		return fmt.Errorf("%w: boss health values must be positive", ErrInvalidSpec)
	case s.Stagger.Max <= 0:
		return fmt.Errorf("%w: stagger max must be positive", ErrInvalidSpec)
	case s.LimbBreakThreshold <= 0:
		return fmt.Errorf("%w: limb break threshold must be positive", ErrInvalidSpec)
	case s.StunDuration <= 0:
		return fmt.Errorf("%w: stun duration must be positive", ErrInvalidSpec)
	}
	for _, name := range []string{"slash", "ram"} {
		if _, ok := s.Attacks[name]; !ok {
			return fmt.Errorf("%w: boss attack %q missing", ErrInvalidSpec, name)
		}
	}
	return nil
}

type LaneSpec struct {
	A   common.Vec2 `yaml:"a"`
	Mid common.Vec2 `yaml:"mid"`
	B   common.Vec2 `yaml:"b"`
}

type ArenaSpec struct {
	Name   string      `yaml:"name"`
	Bounds common.Rect `yaml:"bounds"`
	Lanes  []LaneSpec  `yaml:"lanes"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](ArenaFile)
	if err != nil {
		return nil, err
	}
	if spec.Bounds.Width <= 0 || spec.Bounds.Height <= 0 {
		return nil, fmt.Errorf("%w: arena bounds must have area", ErrInvalidSpec)
	}
	return &spec, nil
}
