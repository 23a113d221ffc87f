package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/sim"
)

var ErrBadTimeline = errors.New("replay: bad timeline")

// Step is one timeline entry. Exactly one of Input, Complete or Strike is
// set.
type Step struct {
	At    float64     `yaml:"at"`
	Input string      `yaml:"input"`
	Move  common.Vec2 `yaml:"move"`
	// Complete reports a finished clip: attack, dodge, throw, hit, parry.
	Complete string `yaml:"complete"`
	// Strike lands a fresh swing of a named boss hitbox on the player.
	Strike string `yaml:"strike"`
}

type Timeline struct {
	// Duration in seconds; the replay stops early when the fight ends.
	Duration float64 `yaml:"duration"`
	Steps    []Step  `yaml:"steps"`
}

func LoadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("replay: unmarshal %s: %w", path, err)
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(tl.Steps, func(i, j int) bool { return tl.Steps[i].At < tl.Steps[j].At })
	return &tl, nil
}

func (tl *Timeline) Validate() error {
	if tl.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrBadTimeline)
	}
	for i, st := range tl.Steps {
		set := 0
		for _, v := range []string{st.Input, st.Complete, st.Strike} {
			if v != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("%w: step %d needs exactly one of input, complete, strike", ErrBadTimeline, i)
		}
		if st.Input != "" {
			if _, ok := sim.ParseInput(st.Input, st.Move); !ok {
				return fmt.Errorf("%w: step %d: unknown input %q", ErrBadTimeline, i, st.Input)
			}
		}
		if st.Complete != "" {
			if _, ok := parseClip(st.Complete); !ok {
				return fmt.Errorf("%w: step %d: unknown clip %q", ErrBadTimeline, i, st.Complete)
			}
		}
	}
	return nil
}

func parseClip(name string) (sim.Clip, bool) {
	switch name {
	case "attack":
		return sim.ClipAttack, true
	case "dodge":
		return sim.ClipDodge, true
	case "throw":
		return sim.ClipThrow, true
	case "hit":
		return sim.ClipHit, true
	case "parry":
		return sim.ClipParry, true
	default:
		return 0, false
	}
}

// Run plays the timeline at the fixed tick. Each step fires on the first tick
// whose start time reaches At. trace, when set, sees every snapshot.
func Run(s *sim.Simulation, tl *Timeline, trace func(sim.Snapshot)) (sim.Snapshot, error) {
	next := 0
	for s.World.Time+1e-9 < tl.Duration {
		for next < len(tl.Steps) && tl.Steps[next].At <= s.World.Time+1e-9 {
			if err := apply(s, tl.Steps[next]); err != nil {
				return s.Snapshot(), err
			}
			next++
		}
		s.Step(sim.FixedDt)

		snap := s.Snapshot()
		if trace != nil {
			trace(snap)
		}
		if snap.Outcome() != "ongoing" {
			return snap, nil
		}
	}
	return s.Snapshot(), nil
}

func apply(s *sim.Simulation, st Step) error {
	switch {
	case st.Input != "":
		in, _ := sim.ParseInput(st.Input, st.Move)
		s.Apply(in)
	case st.Complete != "":
		clip, _ := parseClip(st.Complete)
		s.Complete(clip)
	case st.Strike != "":
		e, ok := s.BossHitbox(st.Strike)
		if !ok {
			return fmt.Errorf("replay: at %.3fs: boss has no hitbox %q", st.At, st.Strike)
		}
		hb, _ := ecs.Get(s.World, e, component.HitboxComponent.Kind())
		hb.Deactivate()
		hb.Activate()
		s.InjectOverlap(e, s.Player)
	}
	return nil
}
