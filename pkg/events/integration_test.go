package events_test

import (
	"testing"

	"github.com/go-slate/slate/pkg/events"
	"github.com/go-slate/slate/pkg/gestures"
	"github.com/go-slate/slate/pkg/graphics"
	"github.com/go-slate/slate/pkg/handle"
	"github.com/go-slate/slate/pkg/visual"
)

// uiNodes serves both layers at once: bounds and the pressed node for
// event dispatch, per-node flags for style resolution.
type uiNodes struct {
	bounds  handle.Pool[handle.NodeFamily, graphics.Rect]
	flags   map[handle.Node]visual.NodeFlags
	pressed handle.Node
	hovered handle.Node
}

func newUINodes() *uiNodes {
	return &uiNodes{flags: map[handle.Node]visual.NodeFlags{}}
}

func (u *uiNodes) add(r graphics.Rect, f visual.NodeFlags) handle.Node {
	n := u.bounds.Create(r)
	u.flags[n] = f
	return n
}

func (u *uiNodes) NodeBounds(node handle.Node) graphics.Rect {
	return *u.bounds.Get(node)
}

func (u *uiNodes) CurrentPressedNode() handle.Node {
	return u.pressed
}

func (u *uiNodes) NodeFlags(node handle.Node) visual.NodeFlags {
	return u.flags[node]
}

func (u *uiNodes) snapshot() visual.InteractionSnapshot {
	return visual.InteractionSnapshot{Pressed: u.pressed, Hovered: u.hovered}
}

// A full tap drives both layers the way an embedding shell would: the
// pointer press restyles the element, the matching release fires the tap
// callback exactly once and restores the hover appearance.
func TestTapRestylesAndFiresOnce(t *testing.T) {
	nodes := newUINodes()
	evLayer := events.NewEventLayer(nodes)
	visLayer := visual.NewVisualLayer(nodes, 16, 0)

	node := nodes.add(graphics.RectFromSize(0, 0, 100, 100), 0)

	taps := 0
	evData := evLayer.OnTapOrClick(node, func(handle.Data, *gestures.PointerEvent) { taps++ })
	visData := visLayer.Create(node, 11)

	visLayer.SetStyleTransition(visual.StyleTransition{
		ToInactiveOver: func(s visual.StyleIndex) visual.StyleIndex {
			if s == 3 {
				return 11
			}
			return s
		},
		ToPressedOver: func(s visual.StyleIndex) visual.StyleIndex {
			if s == 11 {
				return 3
			}
			return s
		},
	})

	// Hover in, then press.
	nodes.hovered = node
	visLayer.Enter(visData, nodes.snapshot())
	if got := visLayer.Style(visData); got != 11 {
		t.Fatalf("style after enter = %d, want 11", got)
	}

	press := leftPress(graphics.Offset{X: 10, Y: 10})
	evLayer.PointerPress(evData, press)
	if !press.Accepted() {
		t.Fatal("click listener must accept a primary press")
	}
	nodes.pressed = node
	visLayer.Press(visData, nodes.snapshot())
	if got := visLayer.Style(visData); got != 3 {
		t.Fatalf("style while pressed = %d, want 3", got)
	}

	// Sliding around inside the bounds keeps the pressed look.
	evLayer.PointerMove(evData, leftMove(graphics.Offset{X: 40, Y: 60}))
	visLayer.Move(visData, nodes.snapshot())
	if got := visLayer.Style(visData); got != 3 {
		t.Fatalf("style during pressed move = %d, want 3", got)
	}
	if taps != 0 {
		t.Fatalf("tap fired before release")
	}

	// Release inside: one tap, style back to the hover appearance.
	release := leftPress(graphics.Offset{X: 40, Y: 60})
	evLayer.PointerRelease(evData, release)
	nodes.pressed = handle.Node{}
	visLayer.Release(visData, nodes.snapshot())

	if taps != 1 {
		t.Fatalf("taps = %d, want exactly 1", taps)
	}
	if !release.Accepted() {
		t.Fatal("completed click must accept the release")
	}
	if got := visLayer.Style(visData); got != 11 {
		t.Fatalf("style after release = %d, want 11", got)
	}
}

// Dragging the pointer out of the element before release aborts the tap
// and the periodic update settles the style without a pointer event.
func TestReleaseOutsideAbortsTap(t *testing.T) {
	nodes := newUINodes()
	evLayer := events.NewEventLayer(nodes)
	visLayer := visual.NewVisualLayer(nodes, 16, 0)

	node := nodes.add(graphics.RectFromSize(0, 0, 100, 100), 0)

	taps := 0
	evData := evLayer.OnTapOrClick(node, func(handle.Data, *gestures.PointerEvent) { taps++ })
	visData := visLayer.Create(node, 11)

	visLayer.SetStyleTransition(visual.StyleTransition{
		ToInactiveOut: func(s visual.StyleIndex) visual.StyleIndex {
			if s == 3 {
				return 11
			}
			return s
		},
		ToPressedOver: func(s visual.StyleIndex) visual.StyleIndex {
			if s == 11 {
				return 3
			}
			return s
		},
	})

	nodes.hovered = node
	evLayer.PointerPress(evData, leftPress(graphics.Offset{X: 10, Y: 10}))
	nodes.pressed = node
	visLayer.Press(visData, nodes.snapshot())
	if got := visLayer.Style(visData); got != 3 {
		t.Fatalf("style while pressed = %d, want 3", got)
	}

	// Pointer leaves the bounds and releases there.
	nodes.hovered = handle.Node{}
	release := leftPress(graphics.Offset{X: 150, Y: 150})
	evLayer.PointerRelease(evData, release)
	nodes.pressed = handle.Node{}

	if taps != 0 {
		t.Fatalf("taps = %d, release outside must not fire", taps)
	}
	if release.Accepted() {
		t.Fatal("aborted click must leave the release unaccepted")
	}

	// No leave event reached the element; the sweep catches up.
	visLayer.Update(nodes.snapshot())
	if got := visLayer.Style(visData); got != 11 {
		t.Fatalf("style after update = %d, want 11", got)
	}
}
