package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/sim"
)

const stickDeadzone = 0.3

// Input polls keyboard and the first gamepad and decodes them into
// simulation input events. Move is only sent when the held direction changes.
type Input struct {
	lastMove common.Vec2
	blocking bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Poll() []sim.Input {
	var events []sim.Input

	move := i.moveVector()
	if move != i.lastMove {
		events = append(events, sim.Move(move))
		i.lastMove = move
	}

	gid, pad := firstGamepad()
	pressed := func(key ebiten.Key, button ebiten.StandardGamepadButton) bool {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
		return pad && inpututil.IsStandardGamepadButtonJustPressed(gid, button)
	}

	if pressed(ebiten.KeyJ, ebiten.StandardGamepadButtonRightBottom) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events = append(events, sim.AttackPressed)
	}
	if pressed(ebiten.KeyShiftLeft, ebiten.StandardGamepadButtonRightLeft) {
		events = append(events, sim.DodgePressed)
	}
	if pressed(ebiten.KeyL, ebiten.StandardGamepadButtonRightRight) {
		events = append(events, sim.ThrowPressed)
	}

	held := ebiten.IsKeyPressed(ebiten.KeyK) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if pad {
		held = held || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
	}
	switch {
	case held && !i.blocking:
		events = append(events, sim.BlockPressed)
	case !held && i.blocking:
		events = append(events, sim.BlockReleased)
	}
	i.blocking = held

	return events
}

func (i *Input) moveVector() common.Vec2 {
	var v common.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		v.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		v.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		v.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		v.Y++
	}

	if gid, ok := firstGamepad(); ok {
		x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if x*x+y*y > stickDeadzone*stickDeadzone {
			return common.V(x, y).Normalize()
		}
	}
	return v.Normalize()
}

func firstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}
