package common

import "math"

// timeEpsilon absorbs float drift when fixed-step timers are compared against
// their authored durations (e.g. 180 * (1/60) landing just under 3.0).
const timeEpsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// EaseOutQuad is the knockback/dodge speed curve: full speed at t=0, zero at t=1.
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - t*t
}

// Elapsed reports whether an accumulated timer has reached duration.
func Elapsed(timer, duration float64) bool {
	return timer+timeEpsilon >= duration
}

func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
