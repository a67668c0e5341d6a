// Package handle provides generation-counted identifiers for pooled objects.
//
// A Handle is an opaque (index, generation) pair referring to one slot of a
// [Pool]. Removing an object bumps the slot's generation, so every handle
// issued before the removal becomes invalid in O(1) and no (index,
// generation) pair is ever reissued.
//
// Handles are typed by family: a [Data] handle cannot be passed where a
// [Node] handle is expected, even though both are the same shape underneath.
// The zero value of any handle type is the null handle and is never valid.
package handle

import "fmt"

// Handle identifies one pooled object within the family F. The family type
// parameter exists purely for compile-time separation; it carries no data.
type Handle[F any] struct {
	index      uint32
	generation uint32
}

// Handle families. Layer, Data, Animator and Animation handles are minted by
// this module; Node handles are minted by the node collaborator and only
// consumed here.
type (
	// LayerFamily tags handles to event or visual layers.
	LayerFamily struct{}
	// DataFamily tags handles to per-layer data elements.
	DataFamily struct{}
	// AnimatorFamily tags handles to animators.
	AnimatorFamily struct{}
	// AnimationFamily tags handles to individual animations.
	AnimationFamily struct{}
	// NodeFamily tags handles to nodes owned by the node collaborator.
	NodeFamily struct{}
)

// Layer identifies an event or visual layer.
type Layer = Handle[LayerFamily]

// Data identifies a data element within a layer.
type Data = Handle[DataFamily]

// Animator identifies an animator.
type Animator = Handle[AnimatorFamily]

// Animation identifies a single animation.
type Animation = Handle[AnimationFamily]

// Node identifies a node in the external node hierarchy.
type Node = Handle[NodeFamily]

// IsNull reports whether h is the null handle. Null handles never refer to
// a live object; they are distinct from stale handles, which carry a real
// index whose generation no longer matches.
func (h Handle[F]) IsNull() bool {
	return h.generation == 0
}

// Index returns the slot index of h, for addressing parallel per-slot
// arrays. The index of a null handle is meaningless.
func (h Handle[F]) Index() int {
	return int(h.index)
}

// String returns a compact debug representation.
func (h Handle[F]) String() string {
	if h.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%d@%d", h.index, h.generation)
}
