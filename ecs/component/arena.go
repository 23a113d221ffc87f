package component

import "github.com/milk9111/bossfight/common"

// DashLane is a phase-two dash path. Mid picks the lane; the endpoint nearer
// the boss becomes the start anchor.
type DashLane struct {
	A   common.Vec2
	Mid common.Vec2
	B   common.Vec2
}

// StartFrom returns the endpoint nearer pos (ties pick A).
func (l DashLane) StartFrom(pos common.Vec2) common.Vec2 {
	if pos.Dist(l.A) <= pos.Dist(l.B) {
		return l.A
	}
	return l.B
}

// EndFrom returns the endpoint farther from pos.
func (l DashLane) EndFrom(pos common.Vec2) common.Vec2 {
	if pos.Dist(l.A) <= pos.Dist(l.B) {
		return l.B
	}
	return l.A
}

type Arena struct {
	Bounds common.Rect
	Lanes  []DashLane
}

// NearestLane returns the index of the lane whose mid point is closest to
// pos, or -1 when there are none. Ties keep the lower index.
func (a *Arena) NearestLane(pos common.Vec2) int {
	if a == nil || len(a.Lanes) == 0 {
		return -1
	}
	best := 0
	bestDist := pos.Dist(a.Lanes[0].Mid)
	for i := 1; i < len(a.Lanes); i++ {
		if d := pos.Dist(a.Lanes[i].Mid); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

var ArenaComponent = NewComponent[Arena]()
