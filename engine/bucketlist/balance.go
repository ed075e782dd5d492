package bucketlist

// insertBefore links a new element node holding key directly before at in
// bucket b and returns it. at is always a real node or the sentinel, so the
// new node needs no tail fixup in the back bucket.
func (l *List[K]) insertBefore(b *bucketNode[K], at *elemNode[K], key K) *elemNode[K] {
	ne := &elemNode[K]{key: key, prev: at.prev, next: at}
	if at.prev != nil {
		at.prev.next = ne
	} else {
		b.head = ne
	}
	at.prev = ne
	b.size++
	l.size++
	return ne
}

// removeElem unlinks element e from bucket b. The sentinel is never removed.
func (l *List[K]) removeElem(b *bucketNode[K], e *elemNode[K]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		b.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		b.tail = e.prev
	}
	b.size--
	l.size--
}

// removeBucket unlinks bucket b from the bucket chain. The back bucket is
// never removed; it owns the sentinel.
func (l *List[K]) removeBucket(b *bucketNode[K]) {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		l.front = b.next
	}
	b.next.prev = b.prev
	l.nbuckets--
}

func (l *List[K]) insertBucketAfter(b, nb *bucketNode[K]) {
	nb.prev = b
	nb.next = b.next
	if b.next != nil {
		b.next.prev = nb
	} else {
		l.back = nb
	}
	b.next = nb
	l.nbuckets++
}

// balance restores the size bounds at bucket b after an erase or a density
// change. It returns the bucket b was merged into when b was spliced away,
// nil otherwise; the caller re-examines the returned bucket.
func (l *List[K]) balance(b *bucketNode[K]) *bucketNode[K] {
	l.dropEmptyRight(b)
	switch {
	case b.size > 2*l.density:
		l.split(b, nil)
	case b.size < (l.density+1)/2 && b != l.back:
		// The back bucket is exempt from the undersize rule.
		return l.merge(b)
	}
	return nil
}

// dropEmptyRight unlinks the run of empty buckets directly after b. The
// back bucket is never dropped; it may stay logically empty holding only
// the sentinel.
func (l *List[K]) dropEmptyRight(b *bucketNode[K]) {
	r := b.next
	for r != nil && r != l.back && r.size == 0 {
		next := r.next
		l.removeBucket(r)
		r = next
	}
}

// split cuts everything past the first density elements of b into a fresh
// bucket spliced in right after it. No element node is copied; when b is
// the back bucket the sentinel travels inside the moved chain and the new
// bucket becomes the sentinel holder. split reports whether targ, if
// non-nil, ended up in the new bucket.
func (l *List[K]) split(b *bucketNode[K], targ *elemNode[K]) bool {
	moved := targ != nil
	mid := b.head
	for i := 0; i < l.density; i++ {
		if mid == targ {
			moved = false
		}
		mid = mid.next
	}

	nb := &bucketNode[K]{head: mid, tail: b.tail, size: b.size - l.density}
	b.tail = mid.prev
	b.tail.next = nil
	mid.prev = nil
	b.size = l.density
	l.insertBucketAfter(b, nb)
	return moved
}

// merge resolves an undersized bucket b against its right neighbor. If a
// full merge would overflow 2*density, half of the neighbor's surplus is
// spliced leftward instead and nil is returned; otherwise b's whole chain
// is spliced onto the neighbor's front in O(1), b is dropped, and the
// neighbor is returned for re-examination.
func (l *List[K]) merge(b *bucketNode[K]) *bucketNode[K] {
	next := b.next
	if b.size+next.size > 2*l.density {
		desired := (next.size - b.size) / 2
		first := next.head
		last := first
		for i := 1; i < desired; i++ {
			last = last.next
		}
		next.head = last.next
		next.head.prev = nil
		last.next = nil

		if b.head == nil {
			b.head = first
		} else {
			b.tail.next = first
			first.prev = b.tail
		}
		b.tail = last
		b.size += desired
		next.size -= desired
		return nil
	}

	if b.head != nil {
		b.tail.next = next.head
		next.head.prev = b.tail
		next.head = b.head
		next.size += b.size
	}
	l.removeBucket(b)
	return next
}
