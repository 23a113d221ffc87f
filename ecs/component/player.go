package component

import (
	"github.com/milk9111/bossfight/combat"
	"github.com/milk9111/bossfight/common"
	"golang.org/x/time/rate"
)

// ActionCosts are stamina costs per action. ParryRefund is given back on a
// successful parry.
type ActionCosts struct {
	Attack      float64
	Dodge       float64
	Throw       float64
	Block       float64
	ParryRefund float64
}

// RecoveryTimes lock the recovery gate after each action, in seconds.
type RecoveryTimes struct {
	Attack  float64
	Dodge   float64
	Throw   float64
	Block   float64
	Hitstun float64
}

// ClipDurations drive completions for clips when no animation collaborator
// reports them. Zero means "wait for Complete".
type ClipDurations struct {
	Attack float64
	Throw  float64
	Hit    float64
	Parry  float64
}

type Player struct {
	MoveSpeed     float64
	DodgeSpeed    float64
	DodgeDuration float64
	// Debounce is the minimum gap between accepted action requests.
	Debounce float64

	Costs    ActionCosts
	Recovery RecoveryTimes
	Clips    ClipDurations

	KnockbackFull     float64
	KnockbackBlock    float64
	KnockbackDuration float64

	AttackDamage   float64
	AttackHitStart float64
	AttackHitEnd   float64

	ThrowSpawnDelay       float64
	ProjectileSpeed       float64
	ProjectileMaxDistance float64
	ProjectileDamage      float64
	ProjectileSize        common.Vec2
	ProjectileOffset      float64
}

// Clip tracks one playing animation clip.
type Clip struct {
	Playing bool
	Elapsed float64
}

func (c *Clip) Start() {
	c.Playing = true
	c.Elapsed = 0
}

func (c *Clip) Stop() {
	c.Playing = false
	c.Elapsed = 0
}

// PendingThrow is a throw accepted but not yet spawned.
type PendingThrow struct {
	Active    bool
	Timer     float64
	Direction common.Vec2
}

// PlayerRuntime is the controller's mutable state.
type PlayerRuntime struct {
	// Held is the raw movement input; Move is what the controller applies.
	Held        common.Vec2
	Move        common.Vec2
	LastMoveDir common.Vec2
	Velocity    common.Vec2

	Knockback combat.Motion
	Dodge     combat.Motion

	Attack    Clip
	Throw     Clip
	Hit       Clip
	ParryClip Clip

	Dead    bool
	Pending PendingThrow

	// AttackHitbox is the entity of the player's melee hitbox.
	AttackHitbox uint64

	// Limiter debounces action requests against simulation time.
	Limiter *rate.Limiter
}

// Dodging reports whether a dodge override is active.
func (r *PlayerRuntime) Dodging() bool { return r != nil && r.Dodge.Active }

// KnockedBack reports whether a knockback override is active.
func (r *PlayerRuntime) KnockedBack() bool { return r != nil && r.Knockback.Active }

var PlayerComponent = NewComponent[Player]()
var PlayerRuntimeComponent = NewComponent[PlayerRuntime]()
