package events

import (
	"github.com/go-slate/slate/pkg/gestures"
	"github.com/go-slate/slate/pkg/handle"
)

// Dispatch entry points. The external dispatcher hit-tests each raw input,
// walks the candidate elements and calls the matching entry point per
// element until the event is accepted. Fallthrough redelivery to ancestors
// arrives with the event's Fallthrough flag set.

// PointerPress delivers a press to one element.
//
// Drag and DragOrScroll elements reached through fallthrough do not accept:
// the press origin is remembered and the descendant keeps capture until the
// pointer travels past the drag threshold. Reached directly, they accept
// immediately and capture from the start. Pinch elements feed the layer's
// recognizer, resetting it when gesture ownership switches elements.
// Everything else accepts on its device set; only Press slots fire.
func (l *EventLayer) PointerPress(data handle.Data, ev *gestures.PointerEvent) {
	el := l.elements.Get(data)
	switch s := el.slot.(type) {
	case dragSlot:
		if !ev.IsPrimaryPointer() {
			return
		}
		if ev.Fallthrough {
			l.pendingDrag = data
			l.pendingDragOrigin = ev.Position
			return
		}
		el.lastPointer = ev.Position
		ev.SetAccepted()
	case pinchSlot:
		if ev.Fallthrough {
			return
		}
		if l.pinchOwner != data {
			l.pinch.Reset()
			l.pinchOwner = data
		}
		if l.pinch.HandlePress(ev.PointerID, ev.Position) {
			ev.SetAccepted()
		}
	case pointerSlot:
		if ev.Fallthrough {
			return
		}
		switch s.k {
		case kindPress:
			if ev.IsPrimaryPointer() {
				s.fn(data, ev)
				ev.SetAccepted()
			}
		case kindTapOrClick:
			if ev.IsPrimaryPointer() {
				ev.SetAccepted()
			}
		case kindMiddleClick:
			if ev.Device == gestures.DeviceMouseMiddle {
				ev.SetAccepted()
			}
		case kindRightClick:
			if ev.Device == gestures.DeviceMouseRight {
				ev.SetAccepted()
			}
		}
	case focusSlot:
		// Accepting the press lets the dispatcher move focus to this node.
		if s.k == kindFocus && !ev.Fallthrough && ev.IsPrimaryPointer() {
			ev.SetAccepted()
		}
	}
}

// PointerRelease delivers a release to one element. Fallthrough releases
// are ignored beyond clearing a pending drag. Click-family slots fire only
// when the release lands inside the node's bounds while the node still
// holds capture; a press that wandered off and back therefore still clicks,
// a press whose capture was taken does not.
func (l *EventLayer) PointerRelease(data handle.Data, ev *gestures.PointerEvent) {
	el := l.elements.Get(data)
	if l.pendingDrag == data {
		l.pendingDrag = handle.Data{}
	}
	if ev.Fallthrough {
		return
	}
	switch s := el.slot.(type) {
	case pinchSlot:
		if l.pinchOwner != data {
			l.pinch.Reset()
			l.pinchOwner = data
		}
		if l.pinch.HandleRelease(ev.PointerID, ev.Position) {
			ev.SetAccepted()
		}
	case pointerSlot:
		switch s.k {
		case kindRelease:
			if ev.IsPrimaryPointer() {
				s.fn(data, ev)
				ev.SetAccepted()
			}
		case kindTapOrClick:
			if ev.IsPrimaryPointer() && l.clickCompleted(el, ev) {
				s.fn(data, ev)
				ev.SetAccepted()
			}
		case kindMiddleClick:
			if ev.Device == gestures.DeviceMouseMiddle && l.clickCompleted(el, ev) {
				s.fn(data, ev)
				ev.SetAccepted()
			}
		case kindRightClick:
			if ev.Device == gestures.DeviceMouseRight && l.clickCompleted(el, ev) {
				s.fn(data, ev)
				ev.SetAccepted()
			}
		}
	}
}

func (l *EventLayer) clickCompleted(el *element, ev *gestures.PointerEvent) bool {
	return l.nodes.NodeBounds(el.node).Contains(ev.Position) &&
		l.nodes.CurrentPressedNode() == el.node
}

// PointerMove delivers a move to one element.
//
// A pending fallthrough drag promotes on the move that crosses the drag
// threshold: the slot fires once with the full delta from the press origin
// and the event is accepted, transferring capture so every further move
// arrives directly. Below the threshold the move stays unaccepted and
// nothing fires.
func (l *EventLayer) PointerMove(data handle.Data, ev *gestures.PointerEvent) {
	el := l.elements.Get(data)
	switch s := el.slot.(type) {
	case dragSlot:
		if l.pendingDrag == data {
			delta := ev.Position.Sub(l.pendingDragOrigin)
			if delta.LengthSquared() >= l.dragThreshold*l.dragThreshold {
				l.pendingDrag = handle.Data{}
				el.lastPointer = ev.Position
				s.fn(data, gestures.DragDetails{Position: ev.Position, Delta: delta})
				ev.SetAccepted()
			}
			return
		}
		if ev.Fallthrough {
			return
		}
		// A live pinch on this layer owns the touches; drags stay quiet.
		if !l.pinchOwner.IsNull() {
			return
		}
		if l.nodes.CurrentPressedNode() == el.node {
			delta := ev.Position.Sub(el.lastPointer)
			el.lastPointer = ev.Position
			s.fn(data, gestures.DragDetails{Position: ev.Position, Delta: delta})
			ev.SetAccepted()
		}
	case pinchSlot:
		if ev.Fallthrough {
			return
		}
		if l.pinchOwner == data && l.pinch.HandleMove(ev.PointerID, ev.Position) {
			ev.SetAccepted()
			if l.pinch.Recognized() {
				s.fn(data, l.pinch.Details())
			}
		}
	case pointerSlot:
		// Enter/Leave elements claim hover moves so the dispatcher can
		// synthesize enter/leave pairs from pointer motion.
		if (s.k == kindEnter || s.k == kindLeave) && !ev.Fallthrough {
			ev.SetAccepted()
		}
	}
}

// PointerEnter fires an Enter slot. Enter events are never redelivered as
// fallthrough and their acceptance is ignored.
func (l *EventLayer) PointerEnter(data handle.Data, ev *gestures.PointerEvent) {
	el := l.elements.Get(data)
	if s, ok := el.slot.(pointerSlot); ok && s.k == kindEnter {
		s.fn(data, ev)
	}
}

// PointerLeave fires a Leave slot; acceptance is ignored.
func (l *EventLayer) PointerLeave(data handle.Data, ev *gestures.PointerEvent) {
	el := l.elements.Get(data)
	if s, ok := el.slot.(pointerSlot); ok && s.k == kindLeave {
		s.fn(data, ev)
	}
}

// PointerCancel aborts any gesture state the element owns: the active pinch
// and a pending fallthrough drag.
func (l *EventLayer) PointerCancel(data handle.Data) {
	if !l.elements.IsValid(data) {
		return
	}
	if l.pinchOwner == data {
		l.pinch.Reset()
		l.pinchOwner = handle.Data{}
	}
	if l.pendingDrag == data {
		l.pendingDrag = handle.Data{}
	}
}

// VisibilityLost is dispatched when the element's node drops out of the
// visible set; in-flight gestures abort the same way as a cancel.
func (l *EventLayer) VisibilityLost(data handle.Data) {
	l.PointerCancel(data)
}

// PointerScroll delivers a scroll to one element. Scroll slots fire with
// the raw offset; DragOrScroll slots fire a drag step with the offset
// scaled by the layer's per-axis scroll step distance.
func (l *EventLayer) PointerScroll(data handle.Data, ev *gestures.PointerEvent) {
	el := l.elements.Get(data)
	switch s := el.slot.(type) {
	case scrollSlot:
		s.fn(data, gestures.ScrollDetails{Position: ev.Position, Offset: ev.ScrollDelta})
		ev.SetAccepted()
	case dragSlot:
		if s.k == kindDragOrScroll {
			s.fn(data, gestures.DragDetails{
				Position: ev.Position,
				Delta:    ev.ScrollDelta.Scale(l.scrollStep),
			})
			ev.SetAccepted()
		}
	}
}

// Focus fires a Focus slot and accepts the event.
func (l *EventLayer) Focus(data handle.Data, ev *gestures.PointerEvent) {
	el := l.elements.Get(data)
	if s, ok := el.slot.(focusSlot); ok && s.k == kindFocus {
		s.fn(data)
		ev.SetAccepted()
	}
}

// Blur fires a Blur slot; acceptance is ignored.
func (l *EventLayer) Blur(data handle.Data) {
	el := l.elements.Get(data)
	if s, ok := el.slot.(focusSlot); ok && s.k == kindBlur {
		s.fn(data)
	}
}
