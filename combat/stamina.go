package combat

// StaminaPool tracks the resource consumed by player actions. It regenerates
// at RegenRate per second once RegenDelay seconds have passed since the last
// successful consumption.
type StaminaPool struct {
	Max        float64
	Current    float64
	RegenRate  float64
	RegenDelay float64

	sinceConsume float64
}

func NewStaminaPool(max, regenRate, regenDelay float64) *StaminaPool {
	if max <= 0 {
		max = 1
	}
	return &StaminaPool{
		Max:          max,
		Current:      max,
		RegenRate:    regenRate,
		RegenDelay:   regenDelay,
		sinceConsume: regenDelay,
	}
}

// TryConsume deducts amount only when the pool can cover it.
func (s *StaminaPool) TryConsume(amount float64) bool {
	if s == nil || amount < 0 || s.Current < amount {
		return false
	}
	s.Current -= amount
	s.sinceConsume = 0
	return true
}

// Refund adds amount back, clamped to Max.
func (s *StaminaPool) Refund(amount float64) {
	if s == nil || amount <= 0 {
		return
	}
	s.Current += amount
	if s.Current > s.Max {
		s.Current = s.Max
	}
}

func (s *StaminaPool) CanAfford(cost float64) bool {
	return s != nil && cost >= 0 && s.Current >= cost
}

// Tick advances the regen delay and regenerates when it has elapsed.
func (s *StaminaPool) Tick(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	s.sinceConsume += dt
	if s.sinceConsume < s.RegenDelay || s.Current >= s.Max {
		return
	}
	s.Current += s.RegenRate * dt
	if s.Current > s.Max {
		s.Current = s.Max
	}
}

func (s *StaminaPool) Percent() float64 {
	if s == nil || s.Max <= 0 {
		return 0
	}
	return s.Current / s.Max
}
