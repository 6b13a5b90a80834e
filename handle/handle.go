// Package handle implements the generational slab allocator the engine
// uses to give out stable integer identifiers for bodies and
// constraints: an identifier packs a dense-array index together with a
// generation counter, so that a slot can be freed and reused without a
// stale caller ever resolving to the new occupant.
package handle

// Handle is an opaque, non-zero identifier. The zero Handle is
// reserved: it never identifies a live object and is what read APIs
// return for "no object" / "world not created".
type Handle uint64

const (
	indexBits      = 32
	indexMask      = (uint64(1) << indexBits) - 1
	maxGeneration  = (uint64(1) << (64 - indexBits)) - 1
	firstFreeLimit = 1 << 11 // start recycling once more than this many slots are free.
)

// newHandle packs a slab index and generation into a Handle. The
// index is stored 1-based so that slot 0 with generation 0 never
// produces the reserved zero Handle.
func newHandle(index uint32, generation uint64) Handle {
	return Handle((generation << indexBits) | uint64(index+1))
}

// index is the slab index used for array lookups.
func (h Handle) index() uint32 { return uint32(uint64(h)&indexMask) - 1 }

// generation tracks whether h still refers to the slot it was issued for.
func (h Handle) generation() uint64 { return uint64(h) >> indexBits }

// slot holds one entry of the registry: its current generation, whether
// it is live, and the value itself.
type slot[T any] struct {
	generation uint64
	live       bool
	value      T
}

// Registry is a generational slab allocator over values of type T.
// Lookup, insertion and removal are all O(1) (removal is amortized
// O(1): the freed index is queued for reuse rather than reclaimed
// immediately, coalescing recycling behind a free list).
type Registry[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Create stores v and returns its new handle. The zero Handle is never
// returned for a successful create.
func (r *Registry[T]) Create(v T) Handle {
	if len(r.free) > firstFreeLimit {
		idx := r.free[0]
		r.free = append(r.free[:0], r.free[1:]...)
		s := &r.slots[idx]
		s.live = true
		s.value = v
		r.count++
		return newHandle(idx, s.generation)
	}
	idx := uint32(len(r.slots))
	r.slots = append(r.slots, slot[T]{live: true, value: v})
	r.count++
	return newHandle(idx, 0)
}

// Get returns a pointer to the live value for h, or (nil, false) if h
// is stale or was never issued. The pointer is valid until the next
// Remove of the same handle's slot; callers must not retain it across
// mutation of the registry.
func (r *Registry[T]) Get(h Handle) (*T, bool) {
	if h == 0 {
		return nil, false
	}
	idx := h.index()
	if int(idx) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[idx]
	if !s.live || s.generation != h.generation() {
		return nil, false
	}
	return &s.value, true
}

// Valid reports whether h currently identifies a live object.
func (r *Registry[T]) Valid(h Handle) bool {
	_, ok := r.Get(h)
	return ok
}

// Remove frees h's slot. It is a no-op for a stale or unknown handle.
// Returns true if a live object was actually removed.
func (r *Registry[T]) Remove(h Handle) bool {
	if h == 0 {
		return false
	}
	idx := h.index()
	if int(idx) >= len(r.slots) {
		return false
	}
	s := &r.slots[idx]
	if !s.live || s.generation != h.generation() {
		return false
	}
	s.live = false
	var zero T
	s.value = zero
	if s.generation < maxGeneration {
		s.generation++
	}
	r.free = append(r.free, idx)
	r.count--
	return true
}

// Len returns the number of live objects.
func (r *Registry[T]) Len() int { return r.count }

// Each calls f for every live object in insertion (slot) order. f must
// not mutate the registry.
func (r *Registry[T]) Each(f func(h Handle, v *T)) {
	for i := range r.slots {
		s := &r.slots[i]
		if s.live {
			f(newHandle(uint32(i), s.generation), &s.value)
		}
	}
}

// Reset discards every entry, returning the registry to its initial state.
func (r *Registry[T]) Reset() {
	r.slots = nil
	r.free = nil
	r.count = 0
}
