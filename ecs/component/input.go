package component

import "github.com/milk9111/bossfight/common"

// InputKind is a decoded input event.
type InputKind int

const (
	InputMove InputKind = iota + 1
	InputAttack
	InputDodge
	InputThrow
	InputBlockPressed
	InputBlockReleased
)

func (k InputKind) String() string {
	switch k {
	case InputMove:
		return "move"
	case InputAttack:
		return "attack"
	case InputDodge:
		return "dodge"
	case InputThrow:
		return "throw"
	case InputBlockPressed:
		return "block_pressed"
	case InputBlockReleased:
		return "block_released"
	default:
		return "unknown"
	}
}

type InputEvent struct {
	Kind InputKind
	Move common.Vec2
}

// Input queues decoded events until the input system applies them.
type Input struct {
	Queue []InputEvent
}

var InputComponent = NewComponent[Input]()
