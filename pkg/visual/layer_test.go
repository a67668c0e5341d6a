package visual_test

import (
	"strings"
	"testing"

	slateerr "github.com/go-slate/slate/pkg/errors"
	"github.com/go-slate/slate/pkg/handle"
	"github.com/go-slate/slate/pkg/visual"
)

// fakeNodes stands in for the node collaborator's flag queries.
type fakeNodes struct {
	pool handle.Pool[handle.NodeFamily, visual.NodeFlags]
}

func (f *fakeNodes) add(flags visual.NodeFlags) handle.Node {
	return f.pool.Create(flags)
}

func (f *fakeNodes) set(node handle.Node, flags visual.NodeFlags) {
	*f.pool.Get(node) = flags
}

func (f *fakeNodes) NodeFlags(node handle.Node) visual.NodeFlags {
	return *f.pool.Get(node)
}

// mapping builds a transition function from an index remap table; indices
// absent from the table map to themselves.
func mapping(table map[visual.StyleIndex]visual.StyleIndex) visual.TransitionFunc {
	return func(s visual.StyleIndex) visual.StyleIndex {
		if to, ok := table[s]; ok {
			return to
		}
		return s
	}
}

func TestVisualLayer_NoTransitionsIsIdentity(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 16, 0)
	node := nodes.add(visual.NodeFocusable)
	data := layer.Create(node, 11)

	snapshots := []visual.InteractionSnapshot{
		{},
		{Hovered: node},
		{Hovered: node, Pressed: node},
		{Pressed: node},
		{Focused: node},
		{Focused: node, Hovered: node},
	}
	for _, snap := range snapshots {
		layer.Update(snap)
		if got := layer.Style(data); got != 11 {
			t.Fatalf("style = %d under %+v, want nominal 11", got, snap)
		}
		if flags := layer.Dirty(data); flags != 0 {
			t.Fatalf("evaluation with nil transitions set dirty flags %b", flags)
		}
	}
}

func TestVisualLayer_AssignmentMarksDirtyEvenForPassthrough(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 4, 0)
	a := layer.Create(nodes.add(0), 0)
	b := layer.Create(nodes.add(0), 1)

	passthrough := func(s visual.StyleIndex) visual.StyleIndex { return s }
	layer.SetStyleTransition(visual.StyleTransition{ToInactiveOver: passthrough})

	if !layer.TakeDirty(a).Has(visual.NeedsDataUpdate) {
		t.Error("assignment must mark element a dirty")
	}
	if !layer.TakeDirty(b).Has(visual.NeedsDataUpdate) {
		t.Error("assignment must mark element b dirty")
	}

	// Clearing every function marks nothing.
	layer.SetStyleTransition(visual.StyleTransition{})
	if layer.Dirty(a) != 0 || layer.Dirty(b) != 0 {
		t.Error("assigning an all-nil transition must not mark dirty")
	}
}

func TestVisualLayer_PressedBeatsFocused(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 16, 0)
	node := nodes.add(visual.NodeFocusable)
	data := layer.Create(node, 0)

	layer.SetStyleTransition(visual.StyleTransition{
		ToPressedOut: mapping(map[visual.StyleIndex]visual.StyleIndex{0: 1}),
		ToFocusedOut: mapping(map[visual.StyleIndex]visual.StyleIndex{0: 2}),
	})

	layer.Press(data, visual.InteractionSnapshot{Pressed: node, Focused: node})
	if got := layer.Style(data); got != 1 {
		t.Fatalf("style = %d, want pressed mapping 1", got)
	}
}

func TestVisualLayer_TransitionsCompose(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 16, 0)
	node := nodes.add(0)
	data := layer.Create(node, 11)

	layer.SetStyleTransition(visual.StyleTransition{
		ToInactiveOver: mapping(map[visual.StyleIndex]visual.StyleIndex{11: 12, 3: 11}),
		ToPressedOver:  mapping(map[visual.StyleIndex]visual.StyleIndex{12: 3}),
		ToInactiveOut:  mapping(map[visual.StyleIndex]visual.StyleIndex{11: 11}),
	})
	layer.TakeDirty(data)

	// Hover: nominal 11 -> 12.
	layer.Enter(data, visual.InteractionSnapshot{Hovered: node})
	if got := layer.Style(data); got != 12 {
		t.Fatalf("hover style = %d, want 12", got)
	}

	// Press while hovered composes from the hover result: 12 -> 3.
	layer.Press(data, visual.InteractionSnapshot{Hovered: node, Pressed: node})
	if got := layer.Style(data); got != 3 {
		t.Fatalf("pressed style = %d, want 3", got)
	}

	// Release while still hovered returns along the hover path: 3 -> 11.
	layer.Release(data, visual.InteractionSnapshot{Hovered: node})
	if got := layer.Style(data); got != 11 {
		t.Fatalf("released style = %d, want 11", got)
	}
}

func TestVisualLayer_DisabledReadsCalculatedStyle(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 16, 0)
	node := nodes.add(0)
	data := layer.Create(node, 5)

	layer.SetStyleTransition(visual.StyleTransition{
		ToInactiveOver: mapping(map[visual.StyleIndex]visual.StyleIndex{5: 6}),
		ToDisabled:     mapping(map[visual.StyleIndex]visual.StyleIndex{5: 8, 6: 9}),
	})

	layer.Enter(data, visual.InteractionSnapshot{Hovered: node})
	if got := layer.Style(data); got != 6 {
		t.Fatalf("hover style = %d, want 6", got)
	}

	// Disabling maps from the calculated hover style, not the nominal.
	nodes.set(node, visual.NodeDisabled)
	layer.Update(visual.InteractionSnapshot{Hovered: node})
	if got := layer.Style(data); got != 9 {
		t.Fatalf("disabled style = %d, want 9 (mapped from calculated 6)", got)
	}
}

func TestVisualLayer_LostHoverGetsOutTransitionOnce(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 16, 0)
	node := nodes.add(0)
	data := layer.Create(node, 1)

	outs := 0
	layer.SetStyleTransition(visual.StyleTransition{
		ToInactiveOver: mapping(map[visual.StyleIndex]visual.StyleIndex{1: 2}),
		ToInactiveOut: func(s visual.StyleIndex) visual.StyleIndex {
			outs++
			return 1
		},
	})

	layer.Enter(data, visual.InteractionSnapshot{Hovered: node})

	// The node silently dropped from the hovered singleton (hidden,
	// NoEvents and removed from draw order all look the same here). The
	// same update pass applies the out transition exactly once.
	layer.Update(visual.InteractionSnapshot{})
	if outs != 1 {
		t.Fatalf("out transitions = %d after first update, want 1", outs)
	}
	if got := layer.Style(data); got != 1 {
		t.Fatalf("style = %d, want 1", got)
	}

	layer.Update(visual.InteractionSnapshot{})
	if outs != 1 {
		t.Fatalf("out transitions = %d after second update, want still 1", outs)
	}
}

func TestVisualLayer_LosingFocusableResolvesSilently(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 16, 0)
	node := nodes.add(visual.NodeFocusable)
	data := layer.Create(node, 1)

	blurs := 0
	layer.SetStyleTransition(visual.StyleTransition{
		ToFocusedOut: mapping(map[visual.StyleIndex]visual.StyleIndex{1: 4}),
		ToInactiveOut: func(s visual.StyleIndex) visual.StyleIndex {
			blurs++
			return 1
		},
	})

	layer.Focus(data, visual.InteractionSnapshot{Focused: node})
	if got := layer.Style(data); got != 4 {
		t.Fatalf("focused style = %d, want 4", got)
	}

	// The node stays the focused singleton but loses its Focusable flag:
	// it resolves to inactive with no blur notification, just the state
	// machine moving on.
	nodes.set(node, 0)
	layer.Update(visual.InteractionSnapshot{Focused: node})
	if got := layer.Style(data); got != 1 {
		t.Fatalf("style = %d, want 1", got)
	}
	if blurs != 1 {
		t.Fatalf("inactive transition ran %d times, want 1", blurs)
	}
}

func TestVisualLayer_OutOfRangeResultFatalNamesEvent(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 4, 0)
	node := nodes.add(0)
	data := layer.Create(node, 0)

	layer.SetStyleTransition(visual.StyleTransition{
		ToInactiveOver: func(visual.StyleIndex) visual.StyleIndex { return 99 },
	})

	defer func() {
		r := recover()
		pre, ok := r.(*slateerr.PreconditionError)
		if !ok {
			t.Fatalf("expected *PreconditionError, got %T: %v", r, r)
		}
		if !strings.Contains(pre.Op, "enter") {
			t.Errorf("error op %q does not name the triggering event", pre.Op)
		}
		if !strings.Contains(pre.Detail, "99") {
			t.Errorf("error detail %q does not name the bad index", pre.Detail)
		}
		// Precondition checked before mutation: style unchanged.
		if got := layer.Style(data); got != 0 {
			t.Errorf("style mutated to %d despite fatal result", got)
		}
	}()
	layer.Enter(data, visual.InteractionSnapshot{Hovered: node})
}

func TestVisualLayer_SetStyleWritesThrough(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 8, 0)
	data := layer.Create(nodes.add(0), 2)

	layer.SetStyle(data, 5)
	if layer.Style(data) != 5 || layer.NominalStyle(data) != 5 {
		t.Fatalf("style = %d/%d, want 5/5", layer.Style(data), layer.NominalStyle(data))
	}
	if !layer.TakeDirty(data).Has(visual.NeedsDataUpdate) {
		t.Error("manual style change must mark dirty")
	}

	assertPreconditionPanic(t, func() { layer.SetStyle(data, 8) })
}

func TestVisualLayer_RemoveInvalidatesCalculatedSlot(t *testing.T) {
	nodes := &fakeNodes{}
	layer := visual.NewVisualLayer(nodes, 8, 0)
	data := layer.Create(nodes.add(0), 3)
	idx := data.Index()

	layer.Remove(data)
	if layer.IsValid(data) {
		t.Fatal("removed data must be invalid")
	}
	if got := layer.CalculatedStyles()[idx]; got != visual.InvalidStyle {
		t.Errorf("calculated slot = %d, want InvalidStyle", got)
	}
}

func assertPreconditionPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a precondition panic")
		}
		if _, ok := r.(*slateerr.PreconditionError); !ok {
			t.Fatalf("expected *PreconditionError, got %T: %v", r, r)
		}
	}()
	fn()
}
