// Package arena provides a chunked slab allocator for node-based container engines.
//
// # Concurrency Model
//
// Arena is NOT safe for concurrent use. The containers built on top of it are
// single-threaded by contract, so the arena carries no locks or atomics. Wrap
// the owning container in external synchronization if it must be shared.
//
// # Memory Management
//
// Slots are allocated in fixed-size chunks (4096 slots each). Chunks are only
// appended, never moved or shrunk, so a *T obtained from Get remains valid for
// the lifetime of the arena. Freed slots are zeroed and recycled through a free
// list before a new chunk is reserved. Ref 0 is reserved as the null reference;
// the first real allocation always returns a non-zero Ref.
package arena

import "fmt"

const (
	chunkBits = 12
	chunkSize = 1 << chunkBits // slots per chunk
	chunkMask = chunkSize - 1
)

// Ref is a stable index into an arena. The zero Ref is the null reference and
// never addresses a live slot.
type Ref uint32

// Nil is the null reference.
const Nil Ref = 0

// Stats tracks arena slot usage.
type Stats struct {
	Chunks      int // chunks currently reserved
	Slots       int // total slots reserved (including the null slot)
	Live        int // slots currently allocated
	FreeListLen int // freed slots awaiting reuse
	TotalAllocs int // cumulative allocation count
}

// Arena is a typed slab allocator handing out stable uint32 references.
type Arena[T any] struct {
	chunks      [][]T
	next        Ref // next never-used slot; slot 0 is reserved as null
	free        []Ref
	live        int
	totalAllocs int
}

// New creates an arena with enough chunks reserved for capacityHint slots.
// A hint of zero reserves a single chunk.
func New[T any](capacityHint int) *Arena[T] {
	a := &Arena[T]{next: 1}
	chunks := 1
	if capacityHint > 0 {
		// +1 accounts for the reserved null slot.
		chunks = (capacityHint + 1 + chunkMask) >> chunkBits
	}
	a.chunks = make([][]T, 0, chunks)
	for i := 0; i < chunks; i++ {
		a.chunks = append(a.chunks, make([]T, chunkSize))
	}
	return a
}

// Alloc stores v in a free slot and returns its reference.
func (a *Arena[T]) Alloc(v T) Ref {
	a.live++
	a.totalAllocs++

	if n := len(a.free); n > 0 {
		ref := a.free[n-1]
		a.free = a.free[:n-1]
		*a.slot(ref) = v
		return ref
	}

	ref := a.next
	a.next++
	if int(ref>>chunkBits) == len(a.chunks) {
		a.chunks = append(a.chunks, make([]T, chunkSize))
	}
	*a.slot(ref) = v
	return ref
}

// Free recycles the slot behind ref. The slot is zeroed so dangling reads see
// the zero value and any contained pointers are released to the GC.
func (a *Arena[T]) Free(ref Ref) {
	var zero T
	*a.slot(ref) = zero
	a.free = append(a.free, ref)
	a.live--
}

// Get returns a pointer to the slot behind ref. The pointer stays valid until
// the slot is freed; chunks never move. Get performs no liveness check.
func (a *Arena[T]) Get(ref Ref) *T {
	return a.slot(ref)
}

func (a *Arena[T]) slot(ref Ref) *T {
	return &a.chunks[ref>>chunkBits][ref&chunkMask]
}

// Len returns the number of live slots.
func (a *Arena[T]) Len() int {
	return a.live
}

// Cap returns the total number of slots reserved, including the null slot.
func (a *Arena[T]) Cap() int {
	return len(a.chunks) * chunkSize
}

// Clone returns a deep copy of the arena. References held against the original
// resolve to the same logical slots in the clone, so node links expressed as
// Refs survive cloning without fixup.
func (a *Arena[T]) Clone() *Arena[T] {
	c := &Arena[T]{
		chunks:      make([][]T, len(a.chunks)),
		next:        a.next,
		live:        a.live,
		totalAllocs: a.totalAllocs,
	}
	for i, chunk := range a.chunks {
		dup := make([]T, chunkSize)
		copy(dup, chunk)
		c.chunks[i] = dup
	}
	if len(a.free) > 0 {
		c.free = make([]Ref, len(a.free))
		copy(c.free, a.free)
	}
	return c
}

// Stats returns the current slot usage counters.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		Chunks:      len(a.chunks),
		Slots:       a.Cap(),
		Live:        a.live,
		FreeListLen: len(a.free),
		TotalAllocs: a.totalAllocs,
	}
}

func (a *Arena[T]) String() string {
	s := a.Stats()
	return fmt.Sprintf("Arena{chunks: %d, slots: %d, live: %d, free: %d, allocs: %d}",
		s.Chunks, s.Slots, s.Live, s.FreeListLen, s.TotalAllocs)
}
