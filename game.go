package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/cue"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/metrics"
	"github.com/milk9111/bossfight/prefabs"
	"github.com/milk9111/bossfight/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	// pixelsPerUnit maps world units onto the screen.
	pixelsPerUnit = 48
	recentCues    = 6
)

var (
	colorArena   = colornames.Darkslategray
	colorLane    = colornames.Slategray
	colorHurtbox = colornames.Mediumseagreen
	colorOff     = colornames.Dimgray
	colorHitbox  = colornames.Crimson
	colorPlayer  = colornames.Cornflowerblue
	colorBoss    = colornames.Orange
)

// cueLog keeps the last few cues for the HUD.
type cueLog struct {
	names []string
}

func (c *cueLog) Trigger(evt cue.Event) {
	c.names = append(c.names, string(evt.Name))
	if len(c.names) > recentCues {
		c.names = c.names[len(c.names)-recentCues:]
	}
}

type Game struct {
	frames int
	debug  bool

	log     *logrus.Logger
	metrics *metrics.Metrics
	watcher *prefabs.Watcher
	input   *Input
	cues    *cueLog
	sim     *sim.Simulation
}

func NewGame(log *logrus.Logger, m *metrics.Metrics, watcher *prefabs.Watcher, debug bool) (*Game, error) {
	g := &Game{
		debug:   debug,
		log:     log,
		metrics: m,
		watcher: watcher,
		input:   NewInput(),
		cues:    &cueLog{},
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) restart() error {
	opts, err := sim.DefaultOptions()
	if err != nil {
		return err
	}
	opts.Log = g.log
	opts.Cues = cue.Multi{cue.LogSink{Log: g.log}, g.metrics, g.cues}
	opts.Observe = g.metrics.ObserveSystem

	s, err := sim.New(opts)
	if err != nil {
		return err
	}
	g.metrics.Attach(s.Emitter)
	g.sim = s
	g.input = NewInput()
	return nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	g.applyReloads()

	if g.sim.Snapshot().Outcome() != "ongoing" {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := g.restart(); err != nil {
				g.log.WithError(err).Error("game: restart failed")
			}
		}
		return nil
	}

	g.sim.Apply(g.input.Poll()...)
	g.sim.Step(sim.FixedDt)
	g.metrics.ObserveTick()
	return nil
}

// applyReloads drains edited tuning files between ticks.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.sim.Reload(name); err != nil {
				g.log.WithError(err).WithField("file", name).Warn("game: reload rejected")
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.WithError(err).Warn("game: watcher")
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.sim.World
	if _, arena, ok := ecs.First(w, component.ArenaComponent.Kind()); ok {
		drawRect(screen, arena.Bounds, colorArena, true)
		for _, lane := range arena.Lanes {
			a, b := toScreen(lane.A), toScreen(lane.B)
			vector.StrokeLine(screen, a.x, a.y, b.x, b.y, 1, colorLane, false)
		}
	}

	ecs.ForEach2(w, component.HurtboxComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hurt *component.Hurtbox, tr *component.Transform) {
		clr := colorHurtbox
		if !hurt.Enabled {
			clr = colorOff
		}
		drawRect(screen, boxRect(tr, hurt.Offset, hurt.Size), clr, false)
	})
	ecs.ForEach2(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hb *component.Hitbox, tr *component.Transform) {
		if hb.Active || g.debug {
			clr := colorHitbox
			if !hb.Active {
				clr = colorOff
			}
			drawRect(screen, boxRect(tr, hb.Offset, hb.Size), clr, hb.Active)
		}
	})
	if g.debug {
		drawPhysics(screen, g.sim.Physics())
	}
	drawMarker(screen, w, g.sim.Player, colorPlayer)
	drawMarker(screen, w, g.sim.Boss, colorBoss)

	snap := g.sim.Snapshot()
	lines := []string{
		fmt.Sprintf("FPS: %.1f  tick %d", ebiten.ActualFPS(), snap.Tick),
		fmt.Sprintf("player hp %.0f  stamina %.0f  %s", snap.Player.Health, snap.Player.Stamina, snap.Player.Stance),
		fmt.Sprintf("boss hp %.0f  stagger %.0f  phase %d  %s  limbs broken %d", snap.Boss.Health, snap.Boss.Stagger, snap.Boss.Phase, snap.Boss.State, snap.Boss.LimbsBroken),
		"cues: " + strings.Join(g.cues.names, " "),
	}
	if outcome := snap.Outcome(); outcome != "ongoing" {
		lines = append(lines, outcome+"  (R to restart)")
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

type point struct{ x, y float32 }

// toScreen puts the world origin at the screen center.
func toScreen(p common.Vec2) point {
	return point{
		x: float32(baseWidth/2 + p.X*pixelsPerUnit),
		y: float32(baseHeight/2 + p.Y*pixelsPerUnit),
	}
}

func boxRect(tr *component.Transform, offset, size common.Vec2) common.Rect {
	return common.RectAround(tr.Position.Add(offset.MirrorX(tr.Facing == common.FacingLeft)), size)
}

func drawRect(screen *ebiten.Image, r common.Rect, clr color.Color, filled bool) {
	p := toScreen(common.V(r.X, r.Y))
	w, h := float32(r.Width*pixelsPerUnit), float32(r.Height*pixelsPerUnit)
	if filled {
		vector.DrawFilledRect(screen, p.x, p.y, w, h, clr, false)
		return
	}
	vector.StrokeRect(screen, p.x, p.y, w, h, 1, clr, false)
}

func drawMarker(screen *ebiten.Image, w *ecs.World, e ecs.Entity, clr color.Color) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	p := toScreen(tr.Position)
	vector.DrawFilledCircle(screen, p.x, p.y, 4, clr, true)
	tip := toScreen(tr.Position.Add(tr.Facing.Vec().Scale(0.6)))
	vector.StrokeLine(screen, p.x, p.y, tip.x, tip.y, 2, clr, true)
}
