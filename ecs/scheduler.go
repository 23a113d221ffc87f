package ecs

import (
	"fmt"
	"time"
)

// Scheduler runs systems in a fixed order. Observe, when set, receives the
// wall time each system took.
type Scheduler struct {
	systems []System
	Observe func(system string, took time.Duration)
}

func NewScheduler(systems ...System) *Scheduler {
	copied := make([]System, 0, len(systems))
	for _, s := range systems {
		if s != nil {
			copied = append(copied, s)
		}
	}
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if s.Observe == nil {
			system.Update(w)
			continue
		}
		start := time.Now()
		system.Update(w)
		s.Observe(SystemName(system), time.Since(start))
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// SystemName is the concrete type name of a system, e.g. "*system.BossSystem".
func SystemName(s System) string {
	return fmt.Sprintf("%T", s)
}
