package gestures

import (
	"math"

	"github.com/go-slate/slate/pkg/graphics"
)

// pinchSlop is the combined finger travel, in logical pixels, required
// before a two-finger gesture is recognized. Below the slop the recognizer
// stays silent so taps with two fingers resting do not jitter.
const pinchSlop = 8.0

type pinchTouch struct {
	id      int64
	origin  graphics.Offset
	current graphics.Offset
	active  bool
}

// PinchRecognizer tracks up to two touch contacts and recognizes a pinch
// once both are down and their combined travel exceeds the slop. One
// recognizer serves a whole event layer; the layer remembers which data
// element owns the gesture in flight.
//
// The Handle methods report whether the touch was used, which the event
// layer translates into event acceptance.
type PinchRecognizer struct {
	touches    [2]pinchTouch
	recognized bool
}

// HandlePress offers a new contact to the recognizer. It returns true if
// the contact was claimed (fewer than two contacts were being tracked).
func (r *PinchRecognizer) HandlePress(id int64, pos graphics.Offset) bool {
	for i := range r.touches {
		if r.touches[i].active && r.touches[i].id == id {
			// Repeated press for a tracked contact: refresh position.
			r.touches[i].origin = pos
			r.touches[i].current = pos
			return true
		}
	}
	for i := range r.touches {
		if !r.touches[i].active {
			r.touches[i] = pinchTouch{id: id, origin: pos, current: pos, active: true}
			return true
		}
	}
	return false
}

// HandleRelease removes a contact. It returns true if the contact was being
// tracked. Recognition ends as soon as fewer than two contacts remain.
func (r *PinchRecognizer) HandleRelease(id int64, pos graphics.Offset) bool {
	for i := range r.touches {
		if r.touches[i].active && r.touches[i].id == id {
			r.touches[i] = pinchTouch{}
			r.recognized = false
			return true
		}
	}
	return false
}

// HandleMove updates a tracked contact. It returns true if the contact was
// being tracked; once both contacts have moved past the slop the gesture
// counts as recognized and Details becomes meaningful.
func (r *PinchRecognizer) HandleMove(id int64, pos graphics.Offset) bool {
	used := false
	for i := range r.touches {
		if r.touches[i].active && r.touches[i].id == id {
			r.touches[i].current = pos
			used = true
		}
	}
	if !used {
		return false
	}
	if !r.recognized && r.bothActive() {
		travel := r.touches[0].current.Sub(r.touches[0].origin).LengthSquared() +
			r.touches[1].current.Sub(r.touches[1].origin).LengthSquared()
		if travel >= pinchSlop*pinchSlop {
			r.recognized = true
		}
	}
	return true
}

// Recognized reports whether a full two-finger gesture is in progress.
func (r *PinchRecognizer) Recognized() bool {
	return r.recognized
}

// Details returns the current gesture deltas. Only meaningful while
// Recognized reports true.
func (r *PinchRecognizer) Details() PinchDetails {
	a, b := r.touches[0], r.touches[1]
	originCentroid := graphics.Offset{
		X: (a.origin.X + b.origin.X) / 2,
		Y: (a.origin.Y + b.origin.Y) / 2,
	}
	centroid := graphics.Offset{
		X: (a.current.X + b.current.X) / 2,
		Y: (a.current.Y + b.current.Y) / 2,
	}

	originVec := b.origin.Sub(a.origin)
	currentVec := b.current.Sub(a.current)

	scale := 1.0
	if l := math.Sqrt(originVec.LengthSquared()); l > 0 {
		scale = math.Sqrt(currentVec.LengthSquared()) / l
	}

	rotation := math.Atan2(currentVec.Y, currentVec.X) - math.Atan2(originVec.Y, originVec.X)
	// Normalize into (-pi, pi] so a small counter-rotation does not read
	// as a near-full turn.
	for rotation > math.Pi {
		rotation -= 2 * math.Pi
	}
	for rotation <= -math.Pi {
		rotation += 2 * math.Pi
	}

	return PinchDetails{
		Centroid:    centroid,
		Translation: centroid.Sub(originCentroid),
		Rotation:    rotation,
		Scale:       scale,
	}
}

// Reset drops all tracked contacts and recognition state.
func (r *PinchRecognizer) Reset() {
	r.touches = [2]pinchTouch{}
	r.recognized = false
}

func (r *PinchRecognizer) bothActive() bool {
	return r.touches[0].active && r.touches[1].active
}
