package sim

import (
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

type PlayerSnapshot struct {
	Position    common.Vec2 `yaml:"position"`
	Health      float64     `yaml:"health"`
	Stamina     float64     `yaml:"stamina"`
	Stance      string      `yaml:"stance"`
	Dodging     bool        `yaml:"dodging"`
	KnockedBack bool        `yaml:"knocked_back"`
	Dead        bool        `yaml:"dead"`
}

type BossSnapshot struct {
	Alive       bool        `yaml:"alive"`
	Position    common.Vec2 `yaml:"position"`
	Phase       int         `yaml:"phase"`
	State       string      `yaml:"state"`
	Health      float64     `yaml:"health"`
	Stagger     float64     `yaml:"stagger"`
	LimbsBroken int         `yaml:"limbs_broken"`
}

// Snapshot is a read-only copy of the fight for shells and replays.
type Snapshot struct {
	Tick   uint64         `yaml:"tick"`
	Time   float64        `yaml:"time"`
	Player PlayerSnapshot `yaml:"player"`
	Boss   BossSnapshot   `yaml:"boss"`
}

func (s *Simulation) Snapshot() Snapshot {
	w := s.World
	snap := Snapshot{Tick: w.Tick, Time: w.Time}

	if tr, ok := ecs.Get(w, s.Player, component.TransformComponent.Kind()); ok {
		snap.Player.Position = tr.Position
	}
	if h, ok := ecs.Get(w, s.Player, component.HealthComponent.Kind()); ok {
		snap.Player.Health = h.Current
	}
	if st, ok := ecs.Get(w, s.Player, component.StaminaComponent.Kind()); ok {
		snap.Player.Stamina = st.Current
	}
	if st, ok := ecs.Get(w, s.Player, component.StanceComponent.Kind()); ok {
		snap.Player.Stance = st.State().String()
	}
	if rt, ok := ecs.Get(w, s.Player, component.PlayerRuntimeComponent.Kind()); ok {
		snap.Player.Dodging = rt.Dodging()
		snap.Player.KnockedBack = rt.KnockedBack()
		snap.Player.Dead = rt.Dead
	}

	rt, ok := ecs.Get(w, s.Boss, component.BossRuntimeComponent.Kind())
	if !ok {
		snap.Boss.State = component.BossDead.String()
		return snap
	}
	snap.Boss.Alive = true
	snap.Boss.Phase = rt.Phase
	snap.Boss.State = rt.State.String()
	snap.Boss.LimbsBroken = rt.LimbsBroken
	if tr, ok := ecs.Get(w, s.Boss, component.TransformComponent.Kind()); ok {
		snap.Boss.Position = tr.Position
	}
	if h, ok := ecs.Get(w, s.Boss, component.HealthComponent.Kind()); ok {
		snap.Boss.Health = h.Current
	}
	if st, ok := ecs.Get(w, s.Boss, component.StaggerComponent.Kind()); ok {
		snap.Boss.Stagger = st.Current
	}
	return snap
}

// Outcome is "player_dead", "boss_dead" or "ongoing".
func (s Snapshot) Outcome() string {
	switch {
	case s.Player.Dead:
		return "player_dead"
	case !s.Boss.Alive || s.Boss.State == component.BossDead.String():
		return "boss_dead"
	default:
		return "ongoing"
	}
}
