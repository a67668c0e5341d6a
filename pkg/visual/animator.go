package visual

import (
	"github.com/go-slate/slate/pkg/handle"

	slateerr "github.com/go-slate/slate/pkg/errors"
)

// AnimationFlags modify how an animation resolves.
type AnimationFlags uint8

const (
	// AnimationReverse plays the animation backwards: on stop the attached
	// data receives the source style instead of the target.
	AnimationReverse AnimationFlags = 1 << iota
)

type animationState struct {
	source   StyleIndex
	target   StyleIndex
	data     handle.Data
	slot     uint32
	expected StyleIndex
	flags    AnimationFlags
}

// IndexSet is a bitset over animation slot indices, the form the external
// scheduler hands active/started/stopped sets to Advance in.
type IndexSet []uint64

// NewIndexSet builds a set containing the given indices.
func NewIndexSet(indices ...int) IndexSet {
	var s IndexSet
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add inserts index i, growing the set as needed.
func (s *IndexSet) Add(i int) {
	word := i / 64
	for word >= len(*s) {
		*s = append(*s, 0)
	}
	(*s)[word] |= 1 << (i % 64)
}

// Has reports whether index i is in the set.
func (s IndexSet) Has(i int) bool {
	word := i / 64
	return word < len(s) && s[word]&(1<<(i%64)) != 0
}

// Animator drives style animations against a visual layer's dynamic pool.
//
// An animation interpolates an attached data element from a source to a
// target static style through a lazily allocated dynamic slot. The
// expected-style bookkeeping detects manual style changes racing a running
// animation: once the attached element's style no longer matches what the
// animation last wrote, the animation goes dormant and never clobbers the
// newer value.
type Animator struct {
	layer      *VisualLayer
	animations handle.Pool[handle.AnimationFamily, animationState]
}

// NewAnimator creates an animator bound to layer's dynamic style pool.
func NewAnimator(layer *VisualLayer) *Animator {
	a := &Animator{layer: layer}
	layer.animator = a
	return a
}

// Add registers an animation from source to target, optionally attached to
// a data element of the bound layer (pass the null handle for detached
// bookkeeping-only animations). Both styles must be static.
func (a *Animator) Add(source, target StyleIndex, data handle.Data, flags AnimationFlags) handle.Animation {
	if uint32(source) >= a.layer.styleCount || uint32(target) >= a.layer.styleCount {
		slateerr.Fail("visual.Animator.Add", "animation styles %d -> %d out of static range [0, %d)",
			source, target, a.layer.styleCount)
	}
	return a.animations.Create(animationState{
		source:   source,
		target:   target,
		data:     data,
		slot:     noSlot,
		expected: InvalidStyle,
		flags:    flags,
	})
}

// IsValid reports whether anim refers to a live animation.
func (a *Animator) IsValid(anim handle.Animation) bool {
	return a.animations.IsValid(anim)
}

// Target returns the animation's target static style.
func (a *Animator) Target(anim handle.Animation) StyleIndex {
	return a.animations.Get(anim).target
}

// Slot returns the animation's dynamic slot and whether one is allocated.
func (a *Animator) Slot(anim handle.Animation) (uint32, bool) {
	st := a.animations.Get(anim)
	return st.slot, st.slot != noSlot
}

// Advance runs one scheduler tick over the animations named by the three
// index sets. styles is the layer's calculated style view; writes go
// through it and mark the owning element as needing a data update.
//
// Per animation:
//   - started: the attached element's current style is snapshotted as the
//     expectation (sentinel when unattached or the data is gone).
//   - stopped: when the element's style still matches the expectation the
//     final style is written (target, or source under AnimationReverse);
//     otherwise the data is left untouched. The dynamic slot, if any, is
//     recycled either way, since a mismatched expectation means the element no
//     longer points at the slot.
//   - running without a slot: a stale expectation clears to the sentinel
//     and the animation goes dormant for good. A matching one attempts
//     allocation; exhaustion just retries next tick. On success the
//     dynamic index is written into the element's style and the
//     expectation, and the slot is flagged for appearance upload.
func (a *Animator) Advance(active, started, stopped IndexSet, styles []StyleIndex) {
	a.animations.ForEach(func(h handle.Animation, st *animationState) {
		idx := h.Index()

		if started.Has(idx) {
			if a.layer.elements.IsValid(st.data) {
				st.expected = styles[st.data.Index()]
			} else {
				st.expected = InvalidStyle
			}
		}

		if stopped.Has(idx) {
			if st.expected != InvalidStyle && a.layer.elements.IsValid(st.data) {
				di := st.data.Index()
				if styles[di] == st.expected {
					final := st.target
					if st.flags&AnimationReverse != 0 {
						final = st.source
					}
					if styles[di] != final {
						styles[di] = final
						a.layer.elements.Get(st.data).flags |= NeedsDataUpdate
					}
				}
			}
			if st.slot != noSlot {
				a.layer.pool.Recycle(st.slot)
				st.slot = noSlot
			}
			st.expected = InvalidStyle
			return
		}

		if !active.Has(idx) || st.slot != noSlot {
			return
		}
		// Running, no slot yet.
		if st.expected == InvalidStyle || !a.layer.elements.IsValid(st.data) {
			return
		}
		di := st.data.Index()
		if styles[di] != st.expected {
			// A manual style change slipped in; never revive.
			st.expected = InvalidStyle
			return
		}
		slot, ok := a.layer.pool.Allocate(h)
		if !ok {
			// Pool exhausted; retry next tick.
			return
		}
		st.slot = slot
		dynamic := StyleIndex(a.layer.styleCount + slot)
		styles[di] = dynamic
		st.expected = dynamic
		a.layer.pool.markNeedsUpload(slot)
		a.layer.elements.Get(st.data).flags |= NeedsDataUpdate | NeedsSharedDataUpdate
	})
}

// Clean disposes the animations named by removed, typically because their
// data element went away: allocated slots are recycled, the gone data's
// style is never touched, and the animation handles are freed.
func (a *Animator) Clean(removed IndexSet) {
	var doomed []handle.Animation
	a.animations.ForEach(func(h handle.Animation, st *animationState) {
		if !removed.Has(h.Index()) {
			return
		}
		if st.slot != noSlot {
			a.layer.pool.Recycle(st.slot)
			st.slot = noSlot
		}
		doomed = append(doomed, h)
	})
	for _, h := range doomed {
		a.animations.Remove(h)
	}
}
