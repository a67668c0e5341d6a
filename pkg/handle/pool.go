package handle

import (
	slateerr "github.com/go-slate/slate/pkg/errors"
)

type slot[T any] struct {
	value      T
	generation uint32
	used       bool
}

// Pool stores values of type T addressed by handles of family F. One
// generic implementation serves every handle family.
//
// Create reuses the lowest-index free slot. Remove bumps the slot's
// generation, invalidating all prior handles to it. Slot generations only
// ever grow, so a removed handle can never spring back to life when its
// index is reused.
type Pool[F, T any] struct {
	slots []slot[T]
	used  int
}

// Create stores value in the lowest-index free slot and returns its handle.
func (p *Pool[F, T]) Create(value T) Handle[F] {
	for i := range p.slots {
		if !p.slots[i].used {
			p.slots[i].used = true
			p.slots[i].value = value
			p.used++
			return Handle[F]{index: uint32(i), generation: p.slots[i].generation}
		}
	}
	p.slots = append(p.slots, slot[T]{value: value, generation: 1, used: true})
	p.used++
	return Handle[F]{index: uint32(len(p.slots) - 1), generation: 1}
}

// Remove frees the slot h refers to. Removing through an invalid handle is
// a fatal precondition violation.
func (p *Pool[F, T]) Remove(h Handle[F]) {
	if !p.IsValid(h) {
		slateerr.Fail("handle.Pool.Remove", "invalid handle %v", h)
	}
	s := &p.slots[h.index]
	var zero T
	s.value = zero
	s.used = false
	s.generation++
	p.used--
}

// IsValid reports whether h currently refers to a live slot.
func (p *Pool[F, T]) IsValid(h Handle[F]) bool {
	if h.IsNull() || int(h.index) >= len(p.slots) {
		return false
	}
	s := &p.slots[h.index]
	return s.used && s.generation == h.generation
}

// Get returns the value h refers to. Fatal on an invalid handle.
func (p *Pool[F, T]) Get(h Handle[F]) *T {
	if !p.IsValid(h) {
		slateerr.Fail("handle.Pool.Get", "invalid handle %v", h)
	}
	return &p.slots[h.index].value
}

// Lookup returns the value h refers to, or false if h is invalid. It is the
// non-fatal variant of Get for callers that tolerate stale handles.
func (p *Pool[F, T]) Lookup(h Handle[F]) (*T, bool) {
	if !p.IsValid(h) {
		return nil, false
	}
	return &p.slots[h.index].value, true
}

// Len returns the number of live slots.
func (p *Pool[F, T]) Len() int {
	return p.used
}

// Cap returns the current slot capacity, live or not. Indexes returned by
// Handle.Index are always below Cap.
func (p *Pool[F, T]) Cap() int {
	return len(p.slots)
}

// ForEach calls fn for every live slot in index order.
func (p *Pool[F, T]) ForEach(fn func(Handle[F], *T)) {
	for i := range p.slots {
		if p.slots[i].used {
			fn(Handle[F]{index: uint32(i), generation: p.slots[i].generation}, &p.slots[i].value)
		}
	}
}
