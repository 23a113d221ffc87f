package common

import (
	"fmt"
	"math"
)

// Vec2 is a 2D position or direction in world units.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

var (
	Zero  = Vec2{}
	Left  = Vec2{X: -1}
	Right = Vec2{X: 1}
)

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector, or zero for a (near) zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l <= 1e-9 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// MirrorX flips the horizontal component when mirrored is true.
func (v Vec2) MirrorX(mirrored bool) Vec2 {
	if mirrored {
		v.X = -v.X
	}
	return v
}

// MoveTowards steps from towards target by at most maxStep without overshooting.
func (v Vec2) MoveTowards(target Vec2, maxStep float64) Vec2 {
	delta := target.Sub(v)
	dist := delta.Len()
	if dist <= maxStep || dist <= 1e-9 {
		return target
	}
	return v.Add(delta.Scale(maxStep / dist))
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Facing is the horizontal direction a combatant looks at.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func (f Facing) Vec() Vec2 {
	return Vec2{X: f.Sign()}
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// FacingToward returns the facing from `from` looking at `to`. Ties keep right.
func FacingToward(from, to Vec2) Facing {
	if to.X < from.X {
		return FacingLeft
	}
	return FacingRight
}
