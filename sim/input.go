package sim

import (
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs/component"
)

// Input is one decoded input event.
type Input = component.InputEvent

func Move(v common.Vec2) Input { return Input{Kind: component.InputMove, Move: v} }

var (
	AttackPressed = Input{Kind: component.InputAttack}
	DodgePressed  = Input{Kind: component.InputDodge}
	ThrowPressed  = Input{Kind: component.InputThrow}
	BlockPressed  = Input{Kind: component.InputBlockPressed}
	BlockReleased = Input{Kind: component.InputBlockReleased}
)

// ParseInput maps a replay/shell action name to an input. Move needs the
// vector passed separately.
func ParseInput(name string, move common.Vec2) (Input, bool) {
	switch name {
	case "move":
		return Move(move), true
	case "attack":
		return AttackPressed, true
	case "dodge":
		return DodgePressed, true
	case "throw":
		return ThrowPressed, true
	case "block", "block_pressed":
		return BlockPressed, true
	case "release", "block_released":
		return BlockReleased, true
	default:
		return Input{}, false
	}
}

// Clip names an animation whose completion the shell reports.
type Clip int

const (
	ClipAttack Clip = iota + 1
	ClipDodge
	ClipThrow
	ClipHit
	ClipParry
)
