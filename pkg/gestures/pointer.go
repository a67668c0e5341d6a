// Package gestures defines the pointer event model consumed by the event
// layer, plus the stateful two-finger pinch recognizer.
//
// Events arrive from the external dispatcher, which owns hit testing and
// routing. The only channel back to it is [PointerEvent.SetAccepted]:
// accepting an event stops further propagation and claims pointer capture
// for the accepting element.
package gestures

import (
	"fmt"

	"github.com/go-slate/slate/pkg/graphics"
)

// PointerDevice identifies which physical control produced a pointer event.
type PointerDevice int

const (
	// DeviceMouseLeft is the left mouse button.
	DeviceMouseLeft PointerDevice = iota
	// DeviceMouseMiddle is the middle mouse button.
	DeviceMouseMiddle
	// DeviceMouseRight is the right mouse button.
	DeviceMouseRight
	// DeviceFinger is a touch contact.
	DeviceFinger
	// DevicePen is a stylus contact.
	DevicePen
)

func (d PointerDevice) String() string {
	switch d {
	case DeviceMouseLeft:
		return "mouseLeft"
	case DeviceMouseMiddle:
		return "mouseMiddle"
	case DeviceMouseRight:
		return "mouseRight"
	case DeviceFinger:
		return "finger"
	case DevicePen:
		return "pen"
	default:
		return fmt.Sprintf("PointerDevice(%d)", int(d))
	}
}

// PointerEvent is one raw pointer input as delivered to a single element.
// The dispatcher reuses the same event value across the elements it visits,
// so handlers see acceptance left behind by earlier elements.
type PointerEvent struct {
	// Device is the control that produced the event.
	Device PointerDevice
	// PointerID distinguishes concurrent contacts (fingers, pens).
	PointerID int64
	// Primary marks the first touch of a touch sequence. Only meaningful
	// for DeviceFinger; mouse buttons and pens are implicitly primary or
	// secondary by device.
	Primary bool
	// Position is the event position in logical pixels.
	Position graphics.Offset
	// ScrollDelta is the scroll offset for scroll events, in lines or
	// logical pixels depending on the platform source.
	ScrollDelta graphics.Offset
	// Fallthrough marks an event that a descendant already accepted but
	// that is redelivered to an ancestor with fallthrough pointer events
	// enabled.
	Fallthrough bool

	accepted bool
}

// SetAccepted claims the event: propagation stops and, for press events,
// pointer capture transfers to the accepting element.
func (e *PointerEvent) SetAccepted() {
	e.accepted = true
}

// Accepted reports whether any element claimed the event.
func (e *PointerEvent) Accepted() bool {
	return e.accepted
}

// IsPrimaryPointer reports whether the event comes from the primary pointer
// set: the left mouse button, the primary finger, or a pen.
func (e *PointerEvent) IsPrimaryPointer() bool {
	switch e.Device {
	case DeviceMouseLeft, DevicePen:
		return true
	case DeviceFinger:
		return e.Primary
	default:
		return false
	}
}

// DragDetails describes one drag step delivered to a Drag or DragOrScroll
// handler.
type DragDetails struct {
	// Position is the current pointer position.
	Position graphics.Offset
	// Delta is the movement since the previous step. For the step that
	// promotes a pending fallthrough drag it is the full displacement from
	// the press origin.
	Delta graphics.Offset
}

// ScrollDetails describes a scroll delivered to a Scroll handler.
type ScrollDetails struct {
	// Position is the pointer position at scroll time.
	Position graphics.Offset
	// Offset is the raw scroll offset.
	Offset graphics.Offset
}

// PinchDetails describes the current state of a recognized two-finger
// gesture.
type PinchDetails struct {
	// Centroid is the midpoint between the two contacts.
	Centroid graphics.Offset
	// Translation is the centroid displacement since recognition started.
	Translation graphics.Offset
	// Rotation is the angle in radians between the initial and current
	// inter-finger vectors.
	Rotation float64
	// Scale is the ratio of current to initial inter-finger distance.
	Scale float64
}
