// Package bucketlist implements the linked bucket engine for sorted bucket
// containers.
//
// Keys live in a doubly linked list of buckets, each bucket itself a doubly
// linked list of element nodes sized around a configured density d. Every
// search walks linearly, O(n/d + d) comparisons, but split and merge are
// pure splice operations: element nodes are relocated between buckets
// without copying or reallocating. A position therefore stays valid across
// rebalancing as long as its element was not moved to another bucket; a
// position whose element was relocated keeps pointing at live storage but
// carries a stale bucket reference and must be re-derived.
//
// The last bucket's chain ends in one reserved sentinel node. The sentinel
// backs the End position, is excluded from every count and comparison, and
// gives insertion and iteration a stable anchor past the maximum key.
//
// Like the array engine, key equality is always derived from the ordering
// function and duplicates are stored as distinct elements.
package bucketlist

import (
	"cmp"
	"iter"

	"github.com/hupe1980/sortedbucket/engine"
)

// Compile time check to ensure List satisfies the engine contract.
var _ engine.Interface[int] = (*List[int])(nil)

type elemNode[K any] struct {
	next *elemNode[K]
	prev *elemNode[K]
	key  K
}

type bucketNode[K any] struct {
	next *bucketNode[K]
	prev *bucketNode[K]
	head *elemNode[K]
	tail *elemNode[K]
	size int // logical element count; the sentinel is not counted
}

// Options for the list engine.
type Options[K any] struct {
	// Density is the target bucket size d. Zero derives it from Capacity;
	// explicit values are honored as given, which tests use to force
	// rebalancing on small inputs.
	Density int

	// Capacity is a hint for the expected element count. It seeds the
	// density at max(500, ceil(sqrt(capacity))) when Density is zero.
	Capacity int
}

// DefaultOptions returns the default options for the list engine.
func DefaultOptions[K any]() Options[K] {
	return Options[K]{}
}

// List is a sorted multiset backed by a linked list of linked buckets. The
// back bucket always owns the sentinel node as the final link of its chain.
type List[K any] struct {
	front    *bucketNode[K]
	back     *bucketNode[K]
	sentinel *elemNode[K]
	size     int
	nbuckets int
	density  int
	capacity int
	less     engine.LessFunc[K]
	equal    engine.EqualFunc[K]
}

// New creates a list engine ordered by less.
func New[K any](less engine.LessFunc[K], optFns ...func(o *Options[K])) (*List[K], error) {
	if less == nil {
		return nil, engine.ErrNilLess
	}

	opts := DefaultOptions[K]()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Density < 0 {
		return nil, engine.ErrInvalidDensity
	}
	if opts.Capacity < 0 {
		return nil, engine.ErrInvalidCapacity
	}
	if opts.Density == 0 {
		opts.Density = engine.DensityForCapacity(opts.Capacity)
	}

	sentinel := &elemNode[K]{}
	bucket := &bucketNode[K]{head: sentinel, tail: sentinel}

	return &List[K]{
		front:    bucket,
		back:     bucket,
		sentinel: sentinel,
		nbuckets: 1,
		density:  opts.Density,
		capacity: opts.Capacity,
		less:     less,
		equal:    engine.DeriveEqual(less),
	}, nil
}

// NewOrdered creates a list engine for an ordered key type.
func NewOrdered[K cmp.Ordered](optFns ...func(o *Options[K])) (*List[K], error) {
	return New(cmp.Less[K], optFns...)
}

// Len returns the number of stored elements. The sentinel is not counted.
func (l *List[K]) Len() int {
	return l.size
}

// Density returns the current target bucket size.
func (l *List[K]) Density() int {
	return l.density
}

// lowerBound returns the bucket and element node of the first element not
// ordered before key. The bucket walk compares against each bucket's last
// element; the back bucket is the fallback, where an exhausted interior walk
// lands on the sentinel, which is End. Interior walks are count-guarded so
// the sentinel's key never enters a comparison.
func (l *List[K]) lowerBound(key K) (*bucketNode[K], *elemNode[K]) {
	b := l.front
	for b != l.back && l.less(b.tail.key, key) {
		b = b.next
	}
	e := b.head
	for i := 0; i < b.size && l.less(e.key, key); i++ {
		e = e.next
	}
	return b, e
}

// upperBound returns the bucket and element node of the first element
// ordered strictly after key.
func (l *List[K]) upperBound(key K) (*bucketNode[K], *elemNode[K]) {
	b := l.front
	for b != l.back && !l.less(key, b.tail.key) {
		b = b.next
	}
	e := b.head
	for i := 0; i < b.size && !l.less(key, e.key); i++ {
		e = e.next
	}
	return b, e
}

func (l *List[K]) isEnd(e *elemNode[K]) bool {
	return e == l.sentinel
}

// lookup returns the location and rank of the first occurrence of key, or
// rank -1 when absent. The rank rides the same linear walk the search pays
// anyway.
func (l *List[K]) lookup(key K) (*bucketNode[K], *elemNode[K], int) {
	rank := 0
	b := l.front
	for b != l.back && l.less(b.tail.key, key) {
		rank += b.size
		b = b.next
	}
	e := b.head
	for i := 0; i < b.size && l.less(e.key, key); i++ {
		rank++
		e = e.next
	}
	if l.isEnd(e) || !l.equal(e.key, key) {
		return b, e, -1
	}
	return b, e, rank
}

// Contains reports whether at least one copy of key is stored.
func (l *List[K]) Contains(key K) bool {
	_, _, rank := l.lookup(key)
	return rank >= 0
}

// Rank returns the number of elements strictly ordered before key, or -1
// when key is absent.
func (l *List[K]) Rank(key K) int {
	_, _, rank := l.lookup(key)
	return rank
}

// Find returns the position of the first occurrence of key, End when absent.
func (l *List[K]) Find(key K) Position[K] {
	b, e, rank := l.lookup(key)
	if rank < 0 {
		return l.End()
	}
	return Position[K]{l: l, b: b, e: e}
}

// FindWithRank returns the first-occurrence position of key together with
// its rank. Absent keys yield {End, -1}.
func (l *List[K]) FindWithRank(key K) FindResult[K] {
	b, e, rank := l.lookup(key)
	if rank < 0 {
		return FindResult[K]{Pos: l.End(), Rank: -1}
	}
	return FindResult[K]{Pos: Position[K]{l: l, b: b, e: e}, Rank: rank}
}

// Insert adds one copy of key after any equal keys already stored and
// returns its position. The element node never moves in memory; only its
// bucket may change if the insert triggers a split, and the returned
// position accounts for that.
func (l *List[K]) Insert(key K) Position[K] {
	b, at := l.upperBound(key)
	ne := l.insertBefore(b, at, key)
	if b.size > 2*l.density && l.split(b, ne) {
		return Position[K]{l: l, b: b.next, e: ne}
	}
	return Position[K]{l: l, b: b, e: ne}
}

// InsertN adds n separate copies of key, one walk each, and returns the
// position of the last copy inserted. Non-positive n is a no-op returning
// End.
func (l *List[K]) InsertN(key K, n int) Position[K] {
	if n <= 0 {
		return l.End()
	}
	pos := l.Insert(key)
	for i := 1; i < n; i++ {
		pos = l.Insert(key)
	}
	return pos
}

// InsertSeq inserts one copy per element of seq.
func (l *List[K]) InsertSeq(seq iter.Seq[K]) {
	for key := range seq {
		l.Insert(key)
	}
}

// Add inserts n copies of key, discarding the position.
func (l *List[K]) Add(key K, n int) {
	l.InsertN(key, n)
}

// Erase removes the first occurrence of key and reports whether one was
// removed.
func (l *List[K]) Erase(key K) int {
	b, e, rank := l.lookup(key)
	if rank < 0 {
		return 0
	}
	l.removeElem(b, e)
	for cur := b; cur != nil; cur = l.balance(cur) {
	}
	return 1
}

// EraseAll removes every occurrence of key and reports how many were
// removed. Buckets fully emptied along the way are unlinked as the walk
// passes them, so afterwards only the first touched bucket and its then
// direct successor can be out of bounds.
func (l *List[K]) EraseAll(key K) int {
	first, e, rank := l.lookup(key)
	if rank < 0 {
		return 0
	}

	removed := 0
	b := first
	for {
		next := e.next
		l.removeElem(b, e)
		removed++

		if next == nil {
			// Exhausted a non-back bucket; its successor exists because
			// only the back bucket's chain ends in the sentinel.
			nb := b.next
			if b.size == 0 && b != first {
				l.removeBucket(b)
			}
			b = nb
			next = b.head
		}
		if l.isEnd(next) || !l.equal(next.key, key) {
			break
		}
		e = next
	}

	// A merge chain starting at the first bucket passes through its
	// successor; otherwise the successor still needs its own pass.
	merged := l.balance(first)
	for cur := merged; cur != nil; cur = l.balance(cur) {
	}
	if merged == nil && first.next != nil {
		for cur := first.next; cur != nil; cur = l.balance(cur) {
		}
	}
	return removed
}

// Min returns the smallest key, or false when the container is empty.
func (l *List[K]) Min() (K, bool) {
	var zero K
	if l.size == 0 {
		return zero, false
	}
	return l.front.head.key, true
}

// Max returns the largest key, or false when the container is empty. The
// back bucket may hold only the sentinel, in which case the maximum lives in
// the bucket before it.
func (l *List[K]) Max() (K, bool) {
	var zero K
	if l.size == 0 {
		return zero, false
	}
	if l.back.size > 0 {
		return l.sentinel.prev.key, true
	}
	return l.back.prev.tail.key, true
}

// LowerBound returns the position of the first element not ordered before
// key, End when every element is.
func (l *List[K]) LowerBound(key K) Position[K] {
	b, e := l.lowerBound(key)
	return Position[K]{l: l, b: b, e: e}
}

// UpperBound returns the position of the first element ordered strictly
// after key, End when none is.
func (l *List[K]) UpperBound(key K) Position[K] {
	b, e := l.upperBound(key)
	return Position[K]{l: l, b: b, e: e}
}

// Ascend iterates all elements in ascending order.
func (l *List[K]) Ascend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for b := l.front; b != nil; b = b.next {
			e := b.head
			for i := 0; i < b.size; i++ {
				if !yield(e.key) {
					return
				}
				e = e.next
			}
		}
	}
}

// Descend iterates all elements in descending order.
func (l *List[K]) Descend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for b := l.back; b != nil; b = b.prev {
			e := b.tail
			if b == l.back {
				e = l.sentinel.prev
			}
			for i := 0; i < b.size; i++ {
				if !yield(e.key) {
					return
				}
				e = e.prev
			}
		}
	}
}

// SetDensity changes the target bucket size and rebalances every bucket to
// the new thresholds. Element nodes are only spliced, never copied, so
// positions keep pointing at live storage; bucket references may go stale.
func (l *List[K]) SetDensity(density int) error {
	if density < 1 {
		return engine.ErrInvalidDensity
	}
	l.density = density
	// A merge continues at the combined bucket, a split advances into the
	// upper half, so the sweep visits every resulting bucket.
	b := l.front
	for b != nil {
		if merged := l.balance(b); merged != nil {
			b = merged
		} else {
			b = b.next
		}
	}
	return nil
}

// SetCapacity makes the container aware of the intended capacity, rederiving
// density and rebalancing accordingly.
func (l *List[K]) SetCapacity(capacity int) error {
	if capacity < 0 {
		return engine.ErrInvalidCapacity
	}
	l.capacity = capacity
	return l.SetDensity(engine.DensityForCapacity(capacity))
}

// Clone returns a deep copy sharing no storage with the original.
func (l *List[K]) Clone() *List[K] {
	c := *l
	c.sentinel = &elemNode[K]{}
	c.front, c.back = nil, nil

	var prevB *bucketNode[K]
	for b := l.front; b != nil; b = b.next {
		nb := &bucketNode[K]{size: b.size, prev: prevB}
		if prevB != nil {
			prevB.next = nb
		} else {
			c.front = nb
		}

		var prevE *elemNode[K]
		e := b.head
		for i := 0; i < b.size; i++ {
			ne := &elemNode[K]{key: e.key, prev: prevE}
			if prevE != nil {
				prevE.next = ne
			} else {
				nb.head = ne
			}
			nb.tail = ne
			prevE, e = ne, e.next
		}
		if b == l.back {
			c.sentinel.prev = prevE
			if prevE != nil {
				prevE.next = c.sentinel
			} else {
				nb.head = c.sentinel
			}
			nb.tail = c.sentinel
		}
		prevB = nb
	}
	c.back = prevB
	return &c
}
