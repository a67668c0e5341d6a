// Package visual implements the style-transition state machine and the
// dynamic style pool that backs style animations.
//
// Every data element carries a nominal style chosen by the application and
// a calculated style derived from it by the element's interaction state:
// seven overridable mapping functions move an element between the
// inactive, hovered, focused, pressed and disabled variants of its style
// family. Calculated styles are recomputed on interaction events and
// reconciled once per Update; the draw collaborator consumes the resolved
// array together with the dirty-flag protocol.
//
// Style indices below the static style count address the application's
// fixed styles. Indices at or above it address slots of the bounded
// dynamic pool, which running animations check out to hold interpolated
// appearance data.
package visual

import (
	"github.com/go-slate/slate/pkg/handle"
)

// StyleIndex addresses one style: [0, styleCount) static,
// [styleCount, styleCount+dynamicStyleCount) dynamic.
type StyleIndex uint32

// InvalidStyle is the sentinel style index. It marks dead element slots in
// the calculated array and a cleared animation expectation.
const InvalidStyle = StyleIndex(^uint32(0))

// TransitionFunc remaps a style index to the same logical family's index
// in a different interaction state. The result must lie inside the layer's
// total style range; an out-of-range result is a fatal error.
type TransitionFunc func(StyleIndex) StyleIndex

// StyleTransition holds the seven per-state mapping functions. A nil
// function means identity: evaluation is a no-op that sets no dirty flag
// and never disturbs an in-flight dynamic animation.
//
// Note the deliberate asymmetry: assigning a transition through
// [VisualLayer.SetStyleTransition] marks every element as needing a data
// update even when the assigned functions are behaviorally identity, while
// per-event evaluation of a nil function is observably nothing.
type StyleTransition struct {
	// ToInactiveOut maps to the resting style, pointer outside.
	ToInactiveOut TransitionFunc
	// ToInactiveOver maps to the resting style, pointer hovering.
	ToInactiveOver TransitionFunc
	// ToFocusedOut maps to the focused style, pointer outside.
	ToFocusedOut TransitionFunc
	// ToFocusedOver maps to the focused style, pointer hovering.
	ToFocusedOver TransitionFunc
	// ToPressedOut maps to the pressed style, pointer outside.
	ToPressedOut TransitionFunc
	// ToPressedOver maps to the pressed style, pointer hovering.
	ToPressedOver TransitionFunc
	// ToDisabled maps to the disabled style. Unlike the other six it is
	// applied to the element's calculated style, not the logical one.
	ToDisabled TransitionFunc
}

func (t *StyleTransition) assigned() bool {
	return t.ToInactiveOut != nil || t.ToInactiveOver != nil ||
		t.ToFocusedOut != nil || t.ToFocusedOver != nil ||
		t.ToPressedOut != nil || t.ToPressedOver != nil ||
		t.ToDisabled != nil
}

// stateKind is the resolved interaction state of one element, already
// collapsed to the transition it selects.
type stateKind uint8

const (
	stateInactiveOut stateKind = iota
	stateInactiveOver
	stateFocusedOut
	stateFocusedOver
	statePressedOut
	statePressedOver
	stateDisabled
)

func (t *StyleTransition) forState(s stateKind) TransitionFunc {
	switch s {
	case stateInactiveOut:
		return t.ToInactiveOut
	case stateInactiveOver:
		return t.ToInactiveOver
	case stateFocusedOut:
		return t.ToFocusedOut
	case stateFocusedOver:
		return t.ToFocusedOver
	case statePressedOut:
		return t.ToPressedOut
	case statePressedOver:
		return t.ToPressedOver
	case stateDisabled:
		return t.ToDisabled
	default:
		return nil
	}
}

// NodeFlags are the per-node behavior bits owned by the node collaborator.
type NodeFlags uint8

const (
	// NodeDisabled suppresses interaction and selects the disabled style.
	NodeDisabled NodeFlags = 1 << iota
	// NodeHidden removes the node from the visible set.
	NodeHidden
	// NodeNoEvents excludes the node from event routing.
	NodeNoEvents
	// NodeFocusable allows the node to hold keyboard focus.
	NodeFocusable
	// NodeFallthroughPointerEvents redelivers accepted descendant events
	// to this node.
	NodeFallthroughPointerEvents
)

// Has reports whether all bits of flag are set.
func (f NodeFlags) Has(flag NodeFlags) bool {
	return f&flag == flag
}

// NodeSource is the slice of the node collaborator the visual layer reads.
type NodeSource interface {
	// NodeFlags returns the node's current behavior flags.
	NodeFlags(node handle.Node) NodeFlags
}

// InteractionSnapshot is the pressed/hovered/focused singleton state at one
// moment. Style evaluation is a pure function of the snapshot, the node
// flags and the element's previous style, so callers pass the snapshot
// explicitly rather than the layer reading ambient globals.
type InteractionSnapshot struct {
	// Pressed is the node holding pointer capture, or null.
	Pressed handle.Node
	// Hovered is the node under the pointer, or null.
	Hovered handle.Node
	// Focused is the node holding keyboard focus, or null.
	Focused handle.Node
}

// DirtyFlags is the update protocol shared with the draw collaborator.
type DirtyFlags uint8

const (
	// NeedsDataUpdate marks the element's per-instance data stale.
	NeedsDataUpdate DirtyFlags = 1 << iota
	// NeedsCommonDataUpdate marks the layer's common data stale.
	NeedsCommonDataUpdate
	// NeedsSharedDataUpdate marks shared appearance data stale.
	NeedsSharedDataUpdate
)

// Has reports whether all bits of flag are set.
func (f DirtyFlags) Has(flag DirtyFlags) bool {
	return f&flag == flag
}
