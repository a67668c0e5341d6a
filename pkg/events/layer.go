// Package events implements the per-layer pointer, focus and gesture event
// engine. An EventLayer owns one event slot per data element and dispatches
// raw inputs delivered by the external dispatcher, honoring pointer capture,
// fallthrough redelivery and threshold-based promotion of fallthrough drags.
//
// The node hierarchy, hit testing and event routing live in the node
// collaborator; this package only decides, per element, whether a delivered
// event fires the element's slot and whether the element claims the event.
package events

import (
	"github.com/go-slate/slate/pkg/gestures"
	"github.com/go-slate/slate/pkg/graphics"
	"github.com/go-slate/slate/pkg/handle"

	slateerr "github.com/go-slate/slate/pkg/errors"
)

const (
	// DefaultDragThreshold is the displacement, in logical pixels, a
	// pointer must travel from its press origin before a pending
	// fallthrough drag promotes to a real drag.
	DefaultDragThreshold = 16.0

	// DefaultScrollStepDistance is the per-axis drag distance one scroll
	// unit maps to for DragOrScroll elements.
	DefaultScrollStepDistance = 100.0
)

// NodeSource is the slice of the node collaborator the event layer reads:
// element bounds for the click-family inside test, and the capture
// singleton for release validation and captured drags.
type NodeSource interface {
	// NodeBounds returns the node's bounds in the event coordinate space.
	NodeBounds(node handle.Node) graphics.Rect
	// CurrentPressedNode returns the node currently holding pointer
	// capture, or the null handle.
	CurrentPressedNode() handle.Node
}

type element struct {
	node        handle.Node
	slot        eventSlot
	scoped      bool
	lastPointer graphics.Offset
}

// EventLayer owns the event slots of one layer of interactive elements.
//
// All methods must be called from the UI thread; the layer performs no
// locking. Handlers run synchronously during dispatch and may mutate UI
// state, but they observe the pressed/hovered/focused singletons as they
// existed before the current raw input finished committing.
type EventLayer struct {
	nodes    NodeSource
	elements handle.Pool[handle.DataFamily, element]

	pinch      gestures.PinchRecognizer
	pinchOwner handle.Data

	dragThreshold     float64
	pendingDrag       handle.Data
	pendingDragOrigin graphics.Offset

	scrollStep graphics.Offset

	scopedCount int
	destroyed   bool
}

// NewEventLayer creates an event layer reading node state from nodes.
func NewEventLayer(nodes NodeSource) *EventLayer {
	return &EventLayer{
		nodes:         nodes,
		dragThreshold: DefaultDragThreshold,
		scrollStep:    graphics.Offset{X: DefaultScrollStepDistance, Y: DefaultScrollStepDistance},
	}
}

// SetDragThreshold sets the promotion distance for pending fallthrough
// drags, in logical pixels.
func (l *EventLayer) SetDragThreshold(threshold float64) {
	l.dragThreshold = threshold
}

// SetScrollStepDistance sets the per-axis drag distance one scroll unit
// maps to for DragOrScroll elements.
func (l *EventLayer) SetScrollStepDistance(step graphics.Offset) {
	l.scrollStep = step
}

// Len returns the number of live data elements.
func (l *EventLayer) Len() int {
	return l.elements.Len()
}

// UsedScopedConnectionCount returns the number of outstanding scoped
// connections issued by this layer.
func (l *EventLayer) UsedScopedConnectionCount() int {
	return l.scopedCount
}

// Destroy tears the layer down. Destroying a layer while scoped
// connections are outstanding is a fatal precondition violation: the
// connections hold non-owning references back into the layer.
func (l *EventLayer) Destroy() {
	if l.scopedCount > 0 {
		slateerr.Fail("events.Destroy", "%d scoped connections still outstanding", l.scopedCount)
	}
	l.destroyed = true
}

// Remove destroys the element's slot, dropping its callable and any
// captured state, and frees the data handle. If the element owned the
// active pinch gesture the recognizer resets.
func (l *EventLayer) Remove(data handle.Data) {
	el := l.elements.Get(data)
	if l.pinchOwner == data {
		l.pinch.Reset()
		l.pinchOwner = handle.Data{}
	}
	if l.pendingDrag == data {
		l.pendingDrag = handle.Data{}
	}
	if el.scoped {
		l.scopedCount--
	}
	el.slot = nil
	l.elements.Remove(data)
}

// Node returns the node the element is attached to.
func (l *EventLayer) Node(data handle.Data) handle.Node {
	return l.elements.Get(data).node
}

// IsValid reports whether data refers to a live element of this layer.
func (l *EventLayer) IsValid(data handle.Data) bool {
	return l.elements.IsValid(data)
}

func (l *EventLayer) create(op string, node handle.Node, slot eventSlot, fnNil bool) handle.Data {
	if fnNil {
		slateerr.Fail(op, "nil callback")
	}
	return l.elements.Create(element{node: node, slot: slot})
}

// OnEnter registers an element firing when the pointer enters its node.
func (l *EventLayer) OnEnter(node handle.Node, fn PointerHandler) handle.Data {
	return l.create("events.OnEnter", node, pointerSlot{k: kindEnter, fn: fn}, fn == nil)
}

// OnLeave registers an element firing when the pointer leaves its node.
func (l *EventLayer) OnLeave(node handle.Node, fn PointerHandler) handle.Data {
	return l.create("events.OnLeave", node, pointerSlot{k: kindLeave, fn: fn}, fn == nil)
}

// OnPress registers an element firing on primary-pointer press.
func (l *EventLayer) OnPress(node handle.Node, fn PointerHandler) handle.Data {
	return l.create("events.OnPress", node, pointerSlot{k: kindPress, fn: fn}, fn == nil)
}

// OnRelease registers an element firing on primary-pointer release.
func (l *EventLayer) OnRelease(node handle.Node, fn PointerHandler) handle.Data {
	return l.create("events.OnRelease", node, pointerSlot{k: kindRelease, fn: fn}, fn == nil)
}

// OnTapOrClick registers an element firing when a primary press is released
// inside the node while the node still holds capture.
func (l *EventLayer) OnTapOrClick(node handle.Node, fn PointerHandler) handle.Data {
	return l.create("events.OnTapOrClick", node, pointerSlot{k: kindTapOrClick, fn: fn}, fn == nil)
}

// OnMiddleClick registers an element firing on a completed middle-button
// click.
func (l *EventLayer) OnMiddleClick(node handle.Node, fn PointerHandler) handle.Data {
	return l.create("events.OnMiddleClick", node, pointerSlot{k: kindMiddleClick, fn: fn}, fn == nil)
}

// OnRightClick registers an element firing on a completed right-button
// click.
func (l *EventLayer) OnRightClick(node handle.Node, fn PointerHandler) handle.Data {
	return l.create("events.OnRightClick", node, pointerSlot{k: kindRightClick, fn: fn}, fn == nil)
}

// OnDrag registers an element receiving drag steps while captured, with
// threshold-based promotion when reached through fallthrough.
func (l *EventLayer) OnDrag(node handle.Node, fn DragHandler) handle.Data {
	return l.create("events.OnDrag", node, dragSlot{k: kindDrag, fn: fn}, fn == nil)
}

// OnScroll registers an element receiving raw scroll offsets.
func (l *EventLayer) OnScroll(node handle.Node, fn ScrollHandler) handle.Data {
	return l.create("events.OnScroll", node, scrollSlot{fn: fn}, fn == nil)
}

// OnDragOrScroll registers an element receiving drag steps for both pointer
// drags and scrolls; scroll offsets arrive scaled by the layer's scroll
// step distance.
func (l *EventLayer) OnDragOrScroll(node handle.Node, fn DragHandler) handle.Data {
	return l.create("events.OnDragOrScroll", node, dragSlot{k: kindDragOrScroll, fn: fn}, fn == nil)
}

// OnPinch registers an element receiving two-finger gesture updates.
func (l *EventLayer) OnPinch(node handle.Node, fn PinchHandler) handle.Data {
	return l.create("events.OnPinch", node, pinchSlot{fn: fn}, fn == nil)
}

// OnFocus registers an element firing when its node gains focus.
func (l *EventLayer) OnFocus(node handle.Node, fn FocusHandler) handle.Data {
	return l.create("events.OnFocus", node, focusSlot{k: kindFocus, fn: fn}, fn == nil)
}

// OnBlur registers an element firing when its node loses focus.
func (l *EventLayer) OnBlur(node handle.Node, fn FocusHandler) handle.Data {
	return l.create("events.OnBlur", node, focusSlot{k: kindBlur, fn: fn}, fn == nil)
}
