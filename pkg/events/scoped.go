package events

import (
	"github.com/go-slate/slate/pkg/handle"
)

// ScopedConnection is an owned guard around a registered event slot: Close
// removes the slot. It holds a non-owning reference to its layer and must
// not outlive it; the layer panics on Destroy while connections are
// outstanding, which catches the misuse.
type ScopedConnection struct {
	layer *EventLayer
	data  handle.Data
}

// Data returns the guarded element's handle.
func (c *ScopedConnection) Data() handle.Data {
	return c.data
}

// Close removes the guarded slot. Closing an already-closed connection, or
// one whose element was removed through the layer, is a no-op.
func (c *ScopedConnection) Close() {
	if c.layer != nil && c.layer.IsValid(c.data) {
		c.layer.Remove(c.data)
	}
	c.layer = nil
	c.data = handle.Data{}
}

func (l *EventLayer) scope(data handle.Data) ScopedConnection {
	l.elements.Get(data).scoped = true
	l.scopedCount++
	return ScopedConnection{layer: l, data: data}
}

// OnEnterScoped is OnEnter returning a connection that removes the slot on
// Close. The remaining …Scoped variants follow the same pattern.
func (l *EventLayer) OnEnterScoped(node handle.Node, fn PointerHandler) ScopedConnection {
	return l.scope(l.OnEnter(node, fn))
}

// OnLeaveScoped is the scoped variant of OnLeave.
func (l *EventLayer) OnLeaveScoped(node handle.Node, fn PointerHandler) ScopedConnection {
	return l.scope(l.OnLeave(node, fn))
}

// OnPressScoped is the scoped variant of OnPress.
func (l *EventLayer) OnPressScoped(node handle.Node, fn PointerHandler) ScopedConnection {
	return l.scope(l.OnPress(node, fn))
}

// OnReleaseScoped is the scoped variant of OnRelease.
func (l *EventLayer) OnReleaseScoped(node handle.Node, fn PointerHandler) ScopedConnection {
	return l.scope(l.OnRelease(node, fn))
}

// OnTapOrClickScoped is the scoped variant of OnTapOrClick.
func (l *EventLayer) OnTapOrClickScoped(node handle.Node, fn PointerHandler) ScopedConnection {
	return l.scope(l.OnTapOrClick(node, fn))
}

// OnMiddleClickScoped is the scoped variant of OnMiddleClick.
func (l *EventLayer) OnMiddleClickScoped(node handle.Node, fn PointerHandler) ScopedConnection {
	return l.scope(l.OnMiddleClick(node, fn))
}

// OnRightClickScoped is the scoped variant of OnRightClick.
func (l *EventLayer) OnRightClickScoped(node handle.Node, fn PointerHandler) ScopedConnection {
	return l.scope(l.OnRightClick(node, fn))
}

// OnDragScoped is the scoped variant of OnDrag.
func (l *EventLayer) OnDragScoped(node handle.Node, fn DragHandler) ScopedConnection {
	return l.scope(l.OnDrag(node, fn))
}

// OnScrollScoped is the scoped variant of OnScroll.
func (l *EventLayer) OnScrollScoped(node handle.Node, fn ScrollHandler) ScopedConnection {
	return l.scope(l.OnScroll(node, fn))
}

// OnDragOrScrollScoped is the scoped variant of OnDragOrScroll.
func (l *EventLayer) OnDragOrScrollScoped(node handle.Node, fn DragHandler) ScopedConnection {
	return l.scope(l.OnDragOrScroll(node, fn))
}

// OnPinchScoped is the scoped variant of OnPinch.
func (l *EventLayer) OnPinchScoped(node handle.Node, fn PinchHandler) ScopedConnection {
	return l.scope(l.OnPinch(node, fn))
}

// OnFocusScoped is the scoped variant of OnFocus.
func (l *EventLayer) OnFocusScoped(node handle.Node, fn FocusHandler) ScopedConnection {
	return l.scope(l.OnFocus(node, fn))
}

// OnBlurScoped is the scoped variant of OnBlur.
func (l *EventLayer) OnBlurScoped(node handle.Node, fn FocusHandler) ScopedConnection {
	return l.scope(l.OnBlur(node, fn))
}
