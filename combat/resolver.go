package combat

import "github.com/milk9111/bossfight/common"

// Tier is the outcome class of a resolved hit.
type Tier int

const (
	TierNone Tier = iota
	TierParried
	TierBlocked
	TierHit
	TierRejected
)

func (t Tier) String() string {
	switch t {
	case TierParried:
		return "parried"
	case TierBlocked:
		return "blocked"
	case TierHit:
		return "hit"
	case TierRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Hit is one hitbox overlapping one defender.
type Hit struct {
	AttackerID uint64
	TargetID   uint64
	Hitbox     string
	// Activation distinguishes separate swings of the same hitbox.
	Activation uint64
	Damage     float64

	AttackerFaction Faction
	TargetFaction   Faction

	Attacker Positioned
	Defender Positioned
	// Stance is nil for defenders that cannot block (boss parts).
	Stance  DefenderView
	Target  Damageable
	Counter Counterable
}

// Result reports what a Resolve call did.
type Result struct {
	Tier      Tier
	Damage    float64
	Knockback common.Vec2
	Applied   bool
}

type hitKey struct {
	Hitbox     string
	AttackerID uint64
	Activation uint64
	TargetID   uint64
}

// Resolver turns overlaps into damage. Each activation of a hitbox resolves
// against a given target at most once.
type Resolver struct {
	Emitter *Emitter

	tick     uint64
	lastHits map[hitKey]uint64
}

func NewResolver(emitter *Emitter) *Resolver {
	return &Resolver{Emitter: emitter, lastHits: make(map[hitKey]uint64)}
}

// Tick advances the resolver clock and forgets dedupe entries that can no
// longer match an active swing.
func (r *Resolver) Tick() {
	if r == nil {
		return
	}
	r.tick++
	const keep = 600
	for k, at := range r.lastHits {
		if r.tick-at > keep {
			delete(r.lastHits, k)
		}
	}
}

// Seen reports whether this activation already resolved against the target.
func (r *Resolver) Seen(h Hit) bool {
	if r == nil || r.lastHits == nil {
		return false
	}
	_, ok := r.lastHits[keyOf(h)]
	return ok
}

// Resolve applies one hit. Parry wins over everything; otherwise the damage is
// scaled by the defender's stance and pushed through TakeDamage.
func (r *Resolver) Resolve(h Hit) Result {
	if r == nil || h.Target == nil {
		return Result{}
	}
	if h.AttackerID != 0 && h.AttackerID == h.TargetID {
		return Result{}
	}
	if !h.AttackerFaction.CanHit(h.TargetFaction) {
		return Result{}
	}
	if r.lastHits == nil {
		r.lastHits = make(map[hitKey]uint64)
	}
	key := keyOf(h)
	if _, ok := r.lastHits[key]; ok {
		return Result{}
	}
	r.lastHits[key] = r.tick

	evt := Event{
		AttackerID: h.AttackerID,
		TargetID:   h.TargetID,
		Hitbox:     h.Hitbox,
		Tick:       r.tick,
	}

	if h.Stance != nil && h.Stance.CheckParry() {
		evt.Type = EventParried
		evt.Tier = TierParried
		r.Emitter.Emit(evt)
		if h.Counter != nil {
			h.Counter.OnCountered()
		}
		evt.Type = EventCountered
		r.Emitter.Emit(evt)
		return Result{Tier: TierParried}
	}

	tier := TierHit
	mult := 1.0
	if h.Stance != nil {
		mult = h.Stance.DamageMultiplier()
		if h.Stance.IsBlocking() {
			tier = TierBlocked
		}
	}
	amount := h.Damage * mult
	dir := knockbackDir(h.Attacker, h.Defender)

	evt.Damage = amount
	evt.Tier = tier
	evt.Knockback = dir
	if tier == TierBlocked {
		evt.Type = EventBlocked
	} else {
		evt.Type = EventHit
	}
	r.Emitter.Emit(evt)

	// Fully absorbed: no damage, no invulnerability, no knockback.
	if amount <= 0 {
		return Result{Tier: tier, Knockback: dir}
	}
	if !h.Target.TakeDamage(amount, dir) {
		evt.Type = EventRejected
		evt.Tier = TierRejected
		r.Emitter.Emit(evt)
		return Result{Tier: TierRejected, Knockback: dir}
	}
	evt.Type = EventDamageApplied
	r.Emitter.Emit(evt)
	return Result{Tier: tier, Damage: amount, Knockback: dir, Applied: true}
}

// knockbackDir points from attacker to defender. Coincident positions yield
// the zero vector.
func knockbackDir(attacker, defender Positioned) common.Vec2 {
	if attacker == nil || defender == nil {
		return common.Zero
	}
	return defender.Position().Sub(attacker.Position()).Normalize()
}

func keyOf(h Hit) hitKey {
	return hitKey{Hitbox: h.Hitbox, AttackerID: h.AttackerID, Activation: h.Activation, TargetID: h.TargetID}
}
