package bucketarray

import "cmp"

// Position is a bidirectional handle on one element, addressed by bucket
// and offset. Positions compare with == and, because buckets are indexable,
// carry a total order via Compare; both sides must refer to the same
// container.
//
// Any insert or erase that triggers a rebalance shifts bucket contents, so
// positions must be treated as invalidated by every mutation; mutating
// operations return freshly computed positions instead. Reading or stepping
// past End is undocumented behavior and not checked.
type Position[K any] struct {
	a      *Array[K]
	bucket int
	idx    int
}

// FindResult pairs a position with the rank of its key's first occurrence.
type FindResult[K any] struct {
	Pos  Position[K]
	Rank int
}

// Begin returns the position of the minimum key, End when the container is
// empty.
func (a *Array[K]) Begin() Position[K] {
	if a.size == 0 {
		return a.End()
	}
	return Position[K]{a: a}
}

// End returns the unique past-the-last position, backed by the sentinel
// slot of the last bucket.
func (a *Array[K]) End() Position[K] {
	return Position[K]{a: a, bucket: a.last(), idx: a.blen(a.last())}
}

// Key returns the key at the position.
func (p Position[K]) Key() K {
	return p.a.buckets[p.bucket][p.idx]
}

// Next returns the position one element forward. Exhausting a non-last
// bucket steps to the front of the next bucket; exhausting the last bucket
// lands on the sentinel slot, which is End.
func (p Position[K]) Next() Position[K] {
	idx := p.idx + 1
	if idx >= p.a.blen(p.bucket) && p.bucket < p.a.last() {
		return Position[K]{a: p.a, bucket: p.bucket + 1}
	}
	return Position[K]{a: p.a, bucket: p.bucket, idx: idx}
}

// Prev returns the position one element backward. Stepping back from End
// lands on the maximum key.
func (p Position[K]) Prev() Position[K] {
	if p.idx > 0 {
		return Position[K]{a: p.a, bucket: p.bucket, idx: p.idx - 1}
	}
	b := p.bucket - 1
	return Position[K]{a: p.a, bucket: b, idx: p.a.blen(b) - 1}
}

// Compare orders p against q in element order: negative when p is earlier,
// zero when equal, positive when later.
func (p Position[K]) Compare(q Position[K]) int {
	if c := cmp.Compare(p.bucket, q.bucket); c != 0 {
		return c
	}
	return cmp.Compare(p.idx, q.idx)
}
