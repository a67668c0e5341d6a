package visual

import (
	"github.com/go-slate/slate/pkg/handle"

	slateerr "github.com/go-slate/slate/pkg/errors"
)

// noSlot marks an animation without an allocated dynamic slot.
const noSlot = ^uint32(0)

type poolSlot struct {
	used        bool
	assoc       handle.Animation
	needsUpload bool
}

// StylePool is the bounded pool of dynamic style slots. Slots are checked
// out by running animations and recycled when they stop; a slot optionally
// remembers the animation that owns it so the state machine can resolve a
// dynamic style back to the animation's target.
//
// Exhaustion is expected backpressure, not an error: Allocate reports
// failure and the animator retries next tick. Recycling a slot that was
// never allocated is an API-contract violation and fatal.
type StylePool struct {
	slots []poolSlot
	used  int
}

// NewStylePool creates a pool with the given capacity. Zero is legal.
func NewStylePool(capacity int) *StylePool {
	return &StylePool{slots: make([]poolSlot, capacity)}
}

// Allocate checks out the lowest-index free slot, remembering assoc as its
// owning animation (pass the null handle for none). It reports false when
// the pool is exhausted.
func (p *StylePool) Allocate(assoc handle.Animation) (uint32, bool) {
	for i := range p.slots {
		if !p.slots[i].used {
			p.slots[i] = poolSlot{used: true, assoc: assoc}
			p.used++
			return uint32(i), true
		}
	}
	return 0, false
}

// Recycle frees a previously allocated slot and clears its association.
func (p *StylePool) Recycle(slot uint32) {
	if int(slot) >= len(p.slots) || !p.slots[slot].used {
		slateerr.Fail("visual.StylePool.Recycle", "slot %d is not allocated", slot)
	}
	p.slots[slot] = poolSlot{}
	p.used--
}

// UsedCount returns the number of allocated slots.
func (p *StylePool) UsedCount() int {
	return p.used
}

// Capacity returns the pool capacity.
func (p *StylePool) Capacity() int {
	return len(p.slots)
}

// IsAllocated reports whether slot is currently checked out.
func (p *StylePool) IsAllocated(slot uint32) bool {
	return int(slot) < len(p.slots) && p.slots[slot].used
}

// Association returns the animation owning slot, or the null handle.
// Querying beyond the pool capacity is fatal.
func (p *StylePool) Association(slot uint32) handle.Animation {
	if int(slot) >= len(p.slots) {
		slateerr.Fail("visual.StylePool.Association", "slot %d out of range [0, %d)", slot, len(p.slots))
	}
	return p.slots[slot].assoc
}

// TakeNeedsUpload reports and clears the slot's pending-upload flag. The
// flag is set when an animation first claims the slot, telling the draw
// collaborator the slot's appearance data must be uploaded at least once.
func (p *StylePool) TakeNeedsUpload(slot uint32) bool {
	if int(slot) >= len(p.slots) {
		slateerr.Fail("visual.StylePool.TakeNeedsUpload", "slot %d out of range [0, %d)", slot, len(p.slots))
	}
	pending := p.slots[slot].needsUpload
	p.slots[slot].needsUpload = false
	return pending
}

func (p *StylePool) markNeedsUpload(slot uint32) {
	p.slots[slot].needsUpload = true
}
