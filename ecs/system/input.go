package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// InputSystem applies decoded input events queued on the player, in order.
type InputSystem struct {
	Actions *PlayerActions
}

func NewInputSystem(actions *PlayerActions) *InputSystem {
	return &InputSystem{Actions: actions}
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || s.Actions == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		if in == nil || len(in.Queue) == 0 {
			return
		}
		queue := in.Queue
		in.Queue = nil
		for _, evt := range queue {
			s.apply(w, e, evt)
		}
	})
}

func (s *InputSystem) apply(w *ecs.World, e ecs.Entity, evt component.InputEvent) {
	switch evt.Kind {
	case component.InputMove:
		s.Actions.Move(w, e, evt.Move)
	case component.InputAttack:
		s.Actions.Attack(w, e)
	case component.InputDodge:
		s.Actions.Dodge(w, e)
	case component.InputThrow:
		s.Actions.Throw(w, e)
	case component.InputBlockPressed:
		s.Actions.BlockPress(w, e)
	case component.InputBlockReleased:
		s.Actions.BlockRelease(w, e)
	}
}
