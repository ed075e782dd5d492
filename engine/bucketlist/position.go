package bucketlist

// Position is a bidirectional handle on one element node. Positions compare
// with ==.
//
// Element nodes are spliced, never copied, so a position stays fully valid
// across rebalancing as long as its element remains in the same bucket.
// When a split or merge relocates the element to another bucket, the
// element reference still points at live storage but the enclosing bucket
// reference is stale; such a position must be re-derived before stepping.
// Reading or stepping past End is undocumented behavior and not checked.
type Position[K any] struct {
	l *List[K]
	b *bucketNode[K]
	e *elemNode[K]
}

// FindResult pairs a position with the rank of its key's first occurrence.
type FindResult[K any] struct {
	Pos  Position[K]
	Rank int
}

// Begin returns the position of the minimum key, End when the container is
// empty.
func (l *List[K]) Begin() Position[K] {
	if l.size == 0 {
		return l.End()
	}
	return Position[K]{l: l, b: l.front, e: l.front.head}
}

// End returns the unique past-the-last position, backed by the sentinel
// node.
func (l *List[K]) End() Position[K] {
	return Position[K]{l: l, b: l.back, e: l.sentinel}
}

// Key returns the key at the position.
func (p Position[K]) Key() K {
	return p.e.key
}

// Next returns the position one element forward. The chain of the back
// bucket ends in the sentinel, so stepping off the last element lands on
// End without a boundary check.
func (p Position[K]) Next() Position[K] {
	if p.e.next != nil {
		return Position[K]{l: p.l, b: p.b, e: p.e.next}
	}
	nb := p.b.next
	return Position[K]{l: p.l, b: nb, e: nb.head}
}

// Prev returns the position one element backward. Stepping back from End
// lands on the maximum key.
func (p Position[K]) Prev() Position[K] {
	if p.e.prev != nil {
		return Position[K]{l: p.l, b: p.b, e: p.e.prev}
	}
	pb := p.b.prev
	return Position[K]{l: p.l, b: pb, e: pb.tail}
}
