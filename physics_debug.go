package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
)

// drawPhysics renders the sensors currently in the collision space. Only
// enabled boxes are in the space, so this shows what can overlap this tick.
func drawPhysics(screen *ebiten.Image, pw *ecs.PhysicsWorld) {
	if screen == nil || pw.Space() == nil {
		return
	}
	cp.DrawSpace(pw.Space(), &physicsDrawer{screen: screen, world: pw})
}

type physicsDrawer struct {
	screen *ebiten.Image
	world  *ecs.PhysicsWorld
}

func (d *physicsDrawer) line(a, b cp.Vector, c color.Color) {
	pa, pb := toScreen(common.V(a.X, a.Y)), toScreen(common.V(b.X, b.Y))
	vector.StrokeLine(d.screen, pa.x, pa.y, pb.x, pb.y, 1, c, false)
}

func (d *physicsDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	const steps = 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / steps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
}

func (d *physicsDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *physicsDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *physicsDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *physicsDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	p := toScreen(common.V(pos.X, pos.Y))
	vector.DrawFilledCircle(d.screen, p.x, p.y, float32(size/2), fcolorToRGBA(fill), false)
}

func (d *physicsDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

// ShapeColor tells hitboxes from hurtboxes.
func (d *physicsDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	switch d.world.RoleOf(shape) {
	case ecs.RoleHitbox:
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	case ecs.RoleHurtbox:
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	default:
		return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
	}
}

func (d *physicsDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *physicsDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *physicsDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
