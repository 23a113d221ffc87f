package combat

import "github.com/milk9111/bossfight/common"

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionBoss
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionBoss:
		return "boss"
	default:
		return "neutral"
	}
}

// CanHit reports whether an attack from one faction may land on another.
func (f Faction) CanHit(target Faction) bool {
	if f == FactionNeutral || target == FactionNeutral {
		return true
	}
	return f != target
}

// EventType defines the kind of combat event.
type EventType string

const (
	EventHit           EventType = "hit"
	EventParried       EventType = "parried"
	EventBlocked       EventType = "blocked"
	EventDamageApplied EventType = "damage_applied"
	EventRejected      EventType = "rejected"
	EventCountered     EventType = "countered"
	EventDeath         EventType = "death"
)

// Event is emitted during hit resolution.
type Event struct {
	Type       EventType
	AttackerID uint64
	TargetID   uint64
	Hitbox     string
	Damage     float64
	Tier       Tier
	Knockback  common.Vec2
	Tick       uint64
}

// EventHandler handles combat events.
type EventHandler func(evt Event)

// Emitter fans combat events out to subscribers (logging, metrics, shells).
type Emitter struct {
	Handlers []EventHandler
}

func (e *Emitter) Subscribe(h EventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *Emitter) Emit(evt Event) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
