// Package cue is the one-way contract from the combat core to whatever plays
// animations and sounds.
package cue

import "github.com/sirupsen/logrus"

// Name identifies an animation or audio trigger.
type Name string

const (
	Attack      Name = "attack"
	Dodge       Name = "dodge"
	Throw       Name = "throw"
	Block       Name = "block"
	BlockEnd    Name = "block_end"
	Parry       Name = "parry"
	Hit         Name = "hit"
	BlockedHit  Name = "blocked_hit"
	Death       Name = "death"
	Idle        Name = "idle"
	Move        Name = "move"
	BossSlash   Name = "boss_slash"
	BossRam     Name = "boss_ram"
	BossStun    Name = "boss_stun"
	BossDash    Name = "boss_dash"
	BossDashEnd Name = "boss_dash_end"
	BossPhase2  Name = "boss_phase2"
	BossHurt    Name = "boss_hurt"
	BossDeath   Name = "boss_death"
	LimbBreak   Name = "limb_break"
	Projectile  Name = "projectile"
)

// Event is a single trigger. Entity is the raw ECS entity handle.
type Event struct {
	Name   Name
	Entity uint64
	Tick   uint64
}

// Sink receives cues. Implementations must not call back into the core.
type Sink interface {
	Trigger(evt Event)
}

// Nop drops every cue.
type Nop struct{}

func (Nop) Trigger(Event) {}

// Recorder keeps every cue in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Trigger(evt Event) {
	if r == nil {
		return
	}
	r.Events = append(r.Events, evt)
}

// Count returns how many times name was triggered.
func (r *Recorder) Count(name Name) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, evt := range r.Events {
		if evt.Name == name {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	if r != nil {
		r.Events = nil
	}
}

// LogSink writes cues to a logrus logger at debug level.
type LogSink struct {
	Log logrus.FieldLogger
}

func (s LogSink) Trigger(evt Event) {
	if s.Log == nil {
		return
	}
	s.Log.WithFields(logrus.Fields{
		"cue":    evt.Name,
		"entity": evt.Entity,
		"tick":   evt.Tick,
	}).Debug("cue")
}

// Multi fans a cue out to several sinks.
type Multi []Sink

func (m Multi) Trigger(evt Event) {
	for _, s := range m {
		if s != nil {
			s.Trigger(evt)
		}
	}
}
