// Package bucketarray implements the indexable bucket engine for sorted
// bucket containers.
//
// Keys live in an ordered slice of buckets, each bucket itself an ordered
// slice sized around a configured density d. Lookups binary-search the
// bucket maxima and then the bucket interior, O(log(n/d) + log d)
// comparisons, while inserts and erases pay O(d) element movement inside a
// single bucket. Buckets split above 2d and merge rightward below
// ceil(d/2), which keeps per-operation work near sqrt(n) when density
// tracks the square root of the expected capacity.
//
// The final bucket carries one sentinel slot physically past its last
// element. The sentinel backs the End position, is excluded from every
// count and comparison, and keeps a past-the-last step addressable even
// when the container is empty.
//
// Unlike the tree engine, key equality is always derived from the ordering
// function and duplicates are stored as distinct elements. Any mutation
// that triggers a rebalance invalidates outstanding positions; mutating
// operations return freshly computed positions instead.
package bucketarray

import (
	"cmp"
	"iter"
	"slices"
	"sort"

	"github.com/hupe1980/sortedbucket/engine"
)

// Compile time check to ensure Array satisfies the engine contract.
var _ engine.Interface[int] = (*Array[int])(nil)

// Options for the array engine.
type Options[K any] struct {
	// Density is the target bucket size d. Zero derives it from Capacity;
	// explicit values are honored as given, which tests use to force
	// rebalancing on small inputs.
	Density int

	// Capacity is a hint for the expected element count. It seeds the
	// density at max(500, ceil(sqrt(capacity))) when Density is zero.
	Capacity int
}

// DefaultOptions returns the default options for the array engine.
func DefaultOptions[K any]() Options[K] {
	return Options[K]{}
}

// Array is a sorted multiset backed by an ordered slice of ordered buckets.
type Array[K any] struct {
	buckets  [][]K
	size     int
	density  int
	capacity int
	less     engine.LessFunc[K]
	equal    engine.EqualFunc[K]
}

// New creates an array engine ordered by less.
func New[K any](less engine.LessFunc[K], optFns ...func(o *Options[K])) (*Array[K], error) {
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

	return &Array[K]{
		buckets:  [][]K{make([]K, 1)}, // one bucket holding only the sentinel
		density:  opts.Density,
		capacity: opts.Capacity,
		less:     less,
		equal:    engine.DeriveEqual(less),
	}, nil
}

// NewOrdered creates an array engine for an ordered key type.
func NewOrdered[K cmp.Ordered](optFns ...func(o *Options[K])) (*Array[K], error) {
	return New(cmp.Less[K], optFns...)
}

func (a *Array[K]) last() int {
	return len(a.buckets) - 1
}

// blen returns the logical size of bucket i. The last bucket holds one
// extra physical slot for the sentinel.
func (a *Array[K]) blen(i int) int {
	n := len(a.buckets[i])
	if i == a.last() {
		n--
	}
	return n
}

func (a *Array[K]) back(i int) K {
	return a.buckets[i][a.blen(i)-1]
}

// Len returns the number of stored elements. The sentinel is not counted.
func (a *Array[K]) Len() int {
	return a.size
}

// Density returns the current target bucket size.
func (a *Array[K]) Density() int {
	return a.density
}

// lowerBound returns the bucket and offset of the first element not ordered
// before key. The bucket search covers the non-last buckets only; the last
// bucket is the fallback, where an exhausted interior search lands on the
// sentinel slot, which is End.
func (a *Array[K]) lowerBound(key K) (int, int) {
	bi := sort.Search(a.last(), func(i int) bool {
		bkt := a.buckets[i]
		return !a.less(bkt[len(bkt)-1], key)
	})
	idx := sort.Search(a.blen(bi), func(j int) bool {
		return !a.less(a.buckets[bi][j], key)
	})
	return bi, idx
}

// upperBound returns the bucket and offset of the first element ordered
// strictly after key.
func (a *Array[K]) upperBound(key K) (int, int) {
	bi := sort.Search(a.last(), func(i int) bool {
		bkt := a.buckets[i]
		return a.less(key, bkt[len(bkt)-1])
	})
	idx := sort.Search(a.blen(bi), func(j int) bool {
		return a.less(key, a.buckets[bi][j])
	})
	return bi, idx
}

func (a *Array[K]) isEnd(bi, idx int) bool {
	return bi == a.last() && idx == a.blen(bi)
}

// lookup returns the location and rank of the first occurrence of key, or
// rank -1 when absent. The rank pays a linear walk over the bucket prefix,
// O(n/d) buckets, which is the price of keeping no fenwick-style index over
// bucket sizes.
func (a *Array[K]) lookup(key K) (int, int, int) {
	bi, idx := a.lowerBound(key)
	if a.isEnd(bi, idx) || !a.equal(a.buckets[bi][idx], key) {
		return bi, idx, -1
	}
	rank := idx
	for i := 0; i < bi; i++ {
		rank += a.blen(i)
	}
	return bi, idx, rank
}

// Contains reports whether at least one copy of key is stored.
func (a *Array[K]) Contains(key K) bool {
	bi, idx := a.lowerBound(key)
	return !a.isEnd(bi, idx) && a.equal(a.buckets[bi][idx], key)
}

// Rank returns the number of elements strictly ordered before key, or -1
// when key is absent.
func (a *Array[K]) Rank(key K) int {
	_, _, rank := a.lookup(key)
	return rank
}

// Find returns the position of the first occurrence of key, End when absent.
func (a *Array[K]) Find(key K) Position[K] {
	bi, idx, rank := a.lookup(key)
	if rank < 0 {
		return a.End()
	}
	return Position[K]{a: a, bucket: bi, idx: idx}
}

// FindWithRank returns the first-occurrence position of key together with
// its rank. Absent keys yield {End, -1}.
func (a *Array[K]) FindWithRank(key K) FindResult[K] {
	bi, idx, rank := a.lookup(key)
	if rank < 0 {
		return FindResult[K]{Pos: a.End(), Rank: -1}
	}
	return FindResult[K]{Pos: Position[K]{a: a, bucket: bi, idx: idx}, Rank: rank}
}

// Insert adds one copy of key after any equal keys already stored and
// returns its position. The position is computed after rebalancing; any
// previously held position must be considered invalidated.
func (a *Array[K]) Insert(key K) Position[K] {
	bi, idx := a.upperBound(key)
	a.buckets[bi] = slices.Insert(a.buckets[bi], idx, key)
	a.size++
	bi, idx = a.balanceAfterInsert(bi, idx)
	return Position[K]{a: a, bucket: bi, idx: idx}
}

// InsertN adds n separate copies of key, one descent each, and returns the
// position of the last copy inserted. Non-positive n is a no-op returning
// End.
func (a *Array[K]) InsertN(key K, n int) Position[K] {
	if n <= 0 {
		return a.End()
	}
	pos := a.Insert(key)
	for i := 1; i < n; i++ {
		pos = a.Insert(key)
	}
	return pos
}

// InsertSeq inserts one copy per element of seq.
func (a *Array[K]) InsertSeq(seq iter.Seq[K]) {
	for key := range seq {
		a.Insert(key)
	}
}

// Add inserts n copies of key, discarding the position.
func (a *Array[K]) Add(key K, n int) {
	a.InsertN(key, n)
}

// Erase removes the first occurrence of key and reports whether one was
// removed.
func (a *Array[K]) Erase(key K) int {
	bi, idx := a.lowerBound(key)
	if a.isEnd(bi, idx) || !a.equal(a.buckets[bi][idx], key) {
		return 0
	}
	a.buckets[bi] = slices.Delete(a.buckets[bi], idx, idx+1)
	a.size--
	for a.balance(bi) {
	}
	return 1
}

// EraseAll removes every occurrence of key and reports how many were
// removed. Equal elements are contiguous, so the removal is a single range
// deletion per touched bucket; buckets emptied along the way are dropped by
// the closing rebalance.
func (a *Array[K]) EraseAll(key K) int {
	bi, idx := a.lowerBound(key)
	if a.isEnd(bi, idx) || !a.equal(a.buckets[bi][idx], key) {
		return 0
	}

	removed := 0
	j, start := bi, idx
	for j < len(a.buckets) {
		limit := a.blen(j)
		end := start
		for end < limit && a.equal(a.buckets[j][end], key) {
			end++
		}
		if end > start {
			a.buckets[j] = slices.Delete(a.buckets[j], start, end)
			removed += end - start
		}
		if end < limit {
			break
		}
		j++
		start = 0
	}
	a.size -= removed

	// The touched region is contiguous: bucket bi keeps a prefix, interior
	// buckets are now empty, and the terminal bucket keeps a suffix.
	// Rebalancing bi drops the empties and may cascade a merge; one more
	// pass at its successor covers the terminal remainder.
	for a.balance(bi) {
	}
	if bi+1 < len(a.buckets) {
		for a.balance(bi + 1) {
		}
	}
	return removed
}

// Min returns the smallest key, or false when the container is empty.
func (a *Array[K]) Min() (K, bool) {
	var zero K
	if a.size == 0 {
		return zero, false
	}
	return a.buckets[0][0], true
}

// Max returns the largest key, or false when the container is empty. The
// last bucket may hold only the sentinel, in which case the maximum lives
// in the bucket before it.
func (a *Array[K]) Max() (K, bool) {
	var zero K
	if a.size == 0 {
		return zero, false
	}
	if a.blen(a.last()) > 0 {
		return a.back(a.last()), true
	}
	return a.back(a.last() - 1), true
}

// LowerBound returns the position of the first element not ordered before
// key, End when every element is.
func (a *Array[K]) LowerBound(key K) Position[K] {
	bi, idx := a.lowerBound(key)
	return Position[K]{a: a, bucket: bi, idx: idx}
}

// UpperBound returns the position of the first element ordered strictly
// after key, End when none is.
func (a *Array[K]) UpperBound(key K) Position[K] {
	bi, idx := a.upperBound(key)
	return Position[K]{a: a, bucket: bi, idx: idx}
}

// Ascend iterates all elements in ascending order.
func (a *Array[K]) Ascend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range a.buckets {
			for j := 0; j < a.blen(i); j++ {
				if !yield(a.buckets[i][j]) {
					return
				}
			}
		}
	}
}

// Descend iterates all elements in descending order.
func (a *Array[K]) Descend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := a.last(); i >= 0; i-- {
			for j := a.blen(i) - 1; j >= 0; j-- {
				if !yield(a.buckets[i][j]) {
					return
				}
			}
		}
	}
}

// SetDensity changes the target bucket size and rebalances every bucket to
// the new thresholds. Equivalent to a rehash: all positions are invalidated.
func (a *Array[K]) SetDensity(density int) error {
	if density < 1 {
		return engine.ErrInvalidDensity
	}
	a.density = density
	// A merge keeps the index on the combined bucket, a split advances
	// into the upper half, so the sweep visits every resulting bucket.
	i := 0
	for i < len(a.buckets) {
		if !a.balance(i) {
			i++
		}
	}
	return nil
}

// SetCapacity makes the container aware of the intended capacity, rederiving
// density and rebalancing accordingly.
func (a *Array[K]) SetCapacity(capacity int) error {
	if capacity < 0 {
		return engine.ErrInvalidCapacity
	}
	a.capacity = capacity
	return a.SetDensity(engine.DensityForCapacity(capacity))
}

// Clone returns a deep copy sharing no storage with the original.
func (a *Array[K]) Clone() *Array[K] {
	c := *a
	c.buckets = make([][]K, len(a.buckets))
	for i, bkt := range a.buckets {
		c.buckets[i] = slices.Clone(bkt)
	}
	return &c
}
