package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
)

const (
	collisionTypeHitbox cp.CollisionType = iota + 1
	collisionTypeHurtbox
)

// ShapeRole says which side of a hit a sensor shape is on.
type ShapeRole int

const (
	RoleHitbox ShapeRole = iota + 1
	RoleHurtbox
)

// Overlap is "this hitbox started touching this hurtbox".
type Overlap struct {
	Hitbox  Entity
	Hurtbox Entity
}

// OverlapSource is the collision collaborator. Overlaps drains what was
// detected since the last call.
type OverlapSource interface {
	Overlaps() []Overlap
}

type physicsShape struct {
	body    *cp.Body
	shape   *cp.Shape
	role    ShapeRole
	size    common.Vec2
	inSpace bool
}

// PhysicsWorld owns a Chipmunk space of sensor boxes. Bodies are placed every
// tick from gameplay positions; the space only reports begin contacts between
// hitboxes and hurtboxes.
type PhysicsWorld struct {
	space   *cp.Space
	shapes  map[Entity]*physicsShape
	owners  map[*cp.Shape]Entity
	pending []Overlap
}

func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:  space,
		shapes: make(map[Entity]*physicsShape),
		owners: make(map[*cp.Shape]Entity),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// RoleOf reports which role a shape in the space plays, or 0 for shapes
// the world does not own.
func (pw *PhysicsWorld) RoleOf(shape *cp.Shape) ShapeRole {
	if pw == nil {
		return 0
	}
	if e, ok := pw.owners[shape]; ok {
		return pw.shapes[e].role
	}
	return 0
}

// Sync places the sensor for e at rect. A disabled sensor is taken out of the
// space so re-enabling it produces a fresh begin contact.
func (pw *PhysicsWorld) Sync(e Entity, role ShapeRole, rect common.Rect, enabled bool) {
	if pw == nil || pw.space == nil || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	size := common.V(rect.Width, rect.Height)
	ps, ok := pw.shapes[e]
	if ok && (ps.role != role || ps.size != size) {
		pw.Remove(e)
		ok = false
	}
	if !ok {
		body := cp.NewBody(1, math.Inf(1))
		shape := cp.NewBox(body, rect.Width, rect.Height, 0)
		shape.SetSensor(true)
		if role == RoleHitbox {
			shape.SetCollisionType(collisionTypeHitbox)
		} else {
			shape.SetCollisionType(collisionTypeHurtbox)
		}
		ps = &physicsShape{body: body, shape: shape, role: role, size: size}
		pw.shapes[e] = ps
		pw.owners[shape] = e
	}

	center := rect.Center()
	ps.body.SetPosition(cp.Vector{X: center.X, Y: center.Y})
	ps.body.SetVelocityVector(cp.Vector{})

	switch {
	case enabled && !ps.inSpace:
		pw.space.AddBody(ps.body)
		pw.space.AddShape(ps.shape)
		ps.inSpace = true
	case !enabled && ps.inSpace:
		pw.space.RemoveShape(ps.shape)
		pw.space.RemoveBody(ps.body)
		ps.inSpace = false
	}
}

// Remove forgets e's sensor.
func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	ps, ok := pw.shapes[e]
	if !ok {
		return
	}
	if ps.inSpace {
		pw.space.RemoveShape(ps.shape)
		pw.space.RemoveBody(ps.body)
	}
	delete(pw.owners, ps.shape)
	delete(pw.shapes, e)
}

// Tracked reports whether e has a sensor, and whether it is in the space.
func (pw *PhysicsWorld) Tracked(e Entity) (tracked, enabled bool) {
	if pw == nil {
		return false, false
	}
	ps, ok := pw.shapes[e]
	if !ok {
		return false, false
	}
	return true, ps.inSpace
}

func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Overlaps drains begin contacts collected by Step.
func (pw *PhysicsWorld) Overlaps() []Overlap {
	if pw == nil || len(pw.pending) == 0 {
		return nil
	}
	out := pw.pending
	pw.pending = nil
	return out
}

func (pw *PhysicsWorld) setupHandlers() {
	handler := pw.space.NewCollisionHandler(collisionTypeHitbox, collisionTypeHurtbox)
	handler.UserData = pw
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		hitShape, hurtShape := arb.Shapes()
		hit, okA := pw.owners[hitShape]
		hurt, okB := pw.owners[hurtShape]
		if okA && okB {
			pw.pending = append(pw.pending, Overlap{Hitbox: hit, Hurtbox: hurt})
		}
		return true
	}
}

// ManualOverlaps is an OverlapSource fed by hand, for external engines and
// tests.
type ManualOverlaps struct {
	queued []Overlap
}

func (m *ManualOverlaps) Push(o Overlap) {
	if m != nil {
		m.queued = append(m.queued, o)
	}
}

func (m *ManualOverlaps) Overlaps() []Overlap {
	if m == nil || len(m.queued) == 0 {
		return nil
	}
	out := m.queued
	m.queued = nil
	return out
}

// MultiSource merges several sources in order.
type MultiSource []OverlapSource

func (ms MultiSource) Overlaps() []Overlap {
	var out []Overlap
	for _, s := range ms {
		if s != nil {
			out = append(out, s.Overlaps()...)
		}
	}
	return out
}
