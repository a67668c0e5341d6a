package events

import (
	"github.com/go-slate/slate/pkg/gestures"
	"github.com/go-slate/slate/pkg/handle"
)

// Handler signatures per event family. Every data element owns exactly one
// slot, and each slot kind carries a callable of its own fixed signature;
// dispatch pattern-matches on the kind, so a Drag handler can never be
// invoked with a tap payload or vice versa.

// PointerHandler handles press, release, enter, leave and click-family
// events. The event is mutable; SetAccepted claims it.
type PointerHandler func(data handle.Data, event *gestures.PointerEvent)

// DragHandler handles drag steps.
type DragHandler func(data handle.Data, details gestures.DragDetails)

// ScrollHandler handles scroll offsets.
type ScrollHandler func(data handle.Data, details gestures.ScrollDetails)

// PinchHandler handles recognized two-finger gesture updates.
type PinchHandler func(data handle.Data, details gestures.PinchDetails)

// FocusHandler handles focus and blur notifications.
type FocusHandler func(data handle.Data)

type slotKind uint8

const (
	kindEnter slotKind = iota
	kindLeave
	kindPress
	kindRelease
	kindFocus
	kindBlur
	kindTapOrClick
	kindMiddleClick
	kindRightClick
	kindDrag
	kindScroll
	kindDragOrScroll
	kindPinch
)

func (k slotKind) String() string {
	switch k {
	case kindEnter:
		return "enter"
	case kindLeave:
		return "leave"
	case kindPress:
		return "press"
	case kindRelease:
		return "release"
	case kindFocus:
		return "focus"
	case kindBlur:
		return "blur"
	case kindTapOrClick:
		return "tapOrClick"
	case kindMiddleClick:
		return "middleClick"
	case kindRightClick:
		return "rightClick"
	case kindDrag:
		return "drag"
	case kindScroll:
		return "scroll"
	case kindDragOrScroll:
		return "dragOrScroll"
	case kindPinch:
		return "pinch"
	default:
		return "unknown"
	}
}

// eventSlot is the closed sum over the thirteen slot kinds. Each variant
// boxes a callable of the matching handler signature.
type eventSlot interface {
	kind() slotKind
}

type pointerSlot struct {
	k  slotKind
	fn PointerHandler
}

func (s pointerSlot) kind() slotKind { return s.k }

type dragSlot struct {
	k  slotKind // kindDrag or kindDragOrScroll
	fn DragHandler
}

func (s dragSlot) kind() slotKind { return s.k }

type scrollSlot struct {
	fn ScrollHandler
}

func (s scrollSlot) kind() slotKind { return kindScroll }

type pinchSlot struct {
	fn PinchHandler
}

func (s pinchSlot) kind() slotKind { return kindPinch }

type focusSlot struct {
	k  slotKind // kindFocus or kindBlur
	fn FocusHandler
}

func (s focusSlot) kind() slotKind { return s.k }
