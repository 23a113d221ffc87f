package component

import "github.com/milk9111/bossfight/common"

// AttackKind names a boss attack.
type AttackKind string

const (
	AttackSlash AttackKind = "slash"
	AttackRam   AttackKind = "ram"
	// AttackChase is a selector answer meaning "do not attack, keep chasing".
	AttackChase AttackKind = "chase"
)

// BossAttack is the authored timing and box of one attack.
type BossAttack struct {
	Damage  float64
	Windup  float64
	Active  float64
	Recover float64
	Size    common.Vec2
	Offset  common.Vec2
}

func (a BossAttack) Total() float64 {
	return a.Windup + a.Active + a.Recover
}

// Boss is the authored configuration of a boss entity.
type Boss struct {
	MoveSpeed          float64
	AttackRange        float64
	FlankOffset        float64
	AttackInterval     float64
	StunDuration       float64
	IdleDuration       float64
	DashStartMult      float64
	DashEndMult        float64
	ArrivalRadius      float64
	LimbBreakThreshold int
	DeathRemoveDelay   float64
	ParryStagger       float64
	ContactDamage      float64
	Attacks            map[AttackKind]BossAttack
	AttackScript       string
}

// BossStateID identifies the single active boss behavior state.
type BossStateID int

const (
	BossChase BossStateID = iota
	BossAttacking
	BossStun
	BossMoveToStart
	BossMoveToEnd
	BossIdle
	BossDead
)

func (s BossStateID) String() string {
	switch s {
	case BossChase:
		return "chase"
	case BossAttacking:
		return "attack"
	case BossStun:
		return "stun"
	case BossMoveToStart:
		return "move_to_start"
	case BossMoveToEnd:
		return "move_to_end"
	case BossIdle:
		return "idle"
	case BossDead:
		return "dead"
	default:
		return "unknown"
	}
}

// BossStatePayload is the per-state data. It is zeroed on every transition.
type BossStatePayload struct {
	Elapsed float64
	Target  common.Vec2
	Swing   *Swing
}

// Swing is an attack in progress.
type Swing struct {
	Kind    AttackKind
	Side    common.Facing
	Elapsed float64
	Hitbox  uint64
	Attack  BossAttack
}

// BossRuntime holds the boss's live state.
type BossRuntime struct {
	Phase       int
	State       BossStateID
	Payload     BossStatePayload
	LimbsBroken int
	// DashLane is the arena lane picked by the current phase-two dash.
	DashLane int
	// SinceAttack counts up from the last attack start; attacks need it to
	// reach AttackInterval.
	SinceAttack float64

	// Hitbox entities by name ("slash_left", "slash_right", "ram", "contact").
	Hitboxes map[string]uint64
	// Body is the main-body part, enabled in phase two.
	Body uint64
}

// PartKind separates limbs from the main body.
type PartKind int

const (
	PartLimb PartKind = iota
	PartBody
)

// BossPart is a destructible sub-entity reporting damage to its boss.
type BossPart struct {
	Owner uint64
	Kind  PartKind
	Side  common.Facing
	// Hitbox is removed together with the part when it breaks.
	Hitbox uint64
}

var BossComponent = NewComponent[Boss]()
var BossRuntimeComponent = NewComponent[BossRuntime]()
var BossPartComponent = NewComponent[BossPart]()
