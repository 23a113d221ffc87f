package combat

import "github.com/milk9111/bossfight/common"

// Motion is a timed velocity override (knockback, dodge). Speed eases out as
// 1-t² over Duration.
type Motion struct {
	Active    bool
	Direction common.Vec2
	Speed     float64
	Duration  float64
	Elapsed   float64
}

// Start begins the override. The direction is normalized.
func (m *Motion) Start(dir common.Vec2, speed, duration float64) {
	if m == nil {
		return
	}
	m.Active = duration > 0
	m.Direction = dir.Normalize()
	m.Speed = speed
	m.Duration = duration
	m.Elapsed = 0
}

// StartDistance covers distance over duration at a base speed of
// distance/duration.
func (m *Motion) StartDistance(dir common.Vec2, distance, duration float64) {
	if duration <= 0 {
		return
	}
	m.Start(dir, distance/duration, duration)
}

// Advance returns this tick's velocity. When the duration runs out the motion
// clears itself, the returned velocity is zero and finished is true.
func (m *Motion) Advance(dt float64) (velocity common.Vec2, finished bool) {
	if m == nil || !m.Active {
		return common.Zero, false
	}
	m.Elapsed += dt
	if common.Elapsed(m.Elapsed, m.Duration) {
		m.Stop()
		return common.Zero, true
	}
	eased := common.EaseOutQuad(m.Elapsed / m.Duration)
	return m.Direction.Scale(eased * m.Speed), false
}

func (m *Motion) Stop() {
	if m == nil {
		return
	}
	m.Active = false
	m.Elapsed = 0
}

func (m *Motion) Progress() float64 {
	if m == nil || !m.Active || m.Duration <= 0 {
		return 0
	}
	return common.Clamp01(m.Elapsed / m.Duration)
}
