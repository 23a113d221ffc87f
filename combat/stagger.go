package combat

// StaggerMeter fills on hits taken and drains passively. A full meter is the
// boss's cue to enter Stun.
type StaggerMeter struct {
	Max       float64
	Current   float64
	DecayRate float64
}

func NewStaggerMeter(max, decayRate float64) *StaggerMeter {
	if max <= 0 {
		max = 1
	}
	return &StaggerMeter{Max: max, DecayRate: decayRate}
}

// Add raises the meter, clamped to [0, Max].
func (s *StaggerMeter) Add(amount float64) {
	if s == nil || amount <= 0 {
		return
	}
	s.Current += amount
	if s.Current > s.Max {
		s.Current = s.Max
	}
}

func (s *StaggerMeter) Decay(dt float64) {
	if s == nil || dt <= 0 || s.Current <= 0 {
		return
	}
	s.Current -= s.DecayRate * dt
	if s.Current < 0 {
		s.Current = 0
	}
}

func (s *StaggerMeter) Full() bool {
	return s != nil && s.Current >= s.Max
}

func (s *StaggerMeter) Reset() {
	if s != nil {
		s.Current = 0
	}
}

func (s *StaggerMeter) Percent() float64 {
	if s == nil || s.Max <= 0 {
		return 0
	}
	return s.Current / s.Max
}
