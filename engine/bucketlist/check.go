package bucketlist

import (
	"fmt"

	"github.com/hupe1980/sortedbucket/engine"
)

// Validate checks the structural invariants: intact forward and backward
// links on both levels, the sentinel terminating the back bucket's chain,
// every bucket except possibly the back one sized within
// [ceil(density/2), 2*density], no bucket above 2*density, globally
// non-decreasing key order, and consistent size and bucket counters.
// Intended for tests and debugging; it runs in O(n).
func (l *List[K]) Validate() error {
	if l.front == nil || l.back == nil {
		return l.invariant("missing front or back bucket")
	}
	if l.density < 1 {
		return l.invariant(fmt.Sprintf("density %d below 1", l.density))
	}
	if l.front.prev != nil || l.back.next != nil {
		return l.invariant("bucket chain not terminated")
	}
	if l.back.tail != l.sentinel || l.sentinel.next != nil {
		return l.invariant("back bucket lost the sentinel")
	}

	lower, upper := (l.density+1)/2, 2*l.density
	total, count := 0, 0
	var prevBucket *bucketNode[K]
	var prevKey K
	havePrev := false

	for b := l.front; b != nil; b = b.next {
		if b.prev != prevBucket {
			return l.invariant(fmt.Sprintf("bucket %d prev link broken", count))
		}
		if b != l.back && b.size < lower {
			return l.invariant(fmt.Sprintf("bucket %d size %d below %d", count, b.size, lower))
		}
		if b.size > upper {
			return l.invariant(fmt.Sprintf("bucket %d size %d above %d", count, b.size, upper))
		}

		e := b.head
		var last *elemNode[K]
		for j := 0; j < b.size; j++ {
			if e == nil || e == l.sentinel {
				return l.invariant(fmt.Sprintf("bucket %d chain shorter than size %d", count, b.size))
			}
			if e.prev != last {
				return l.invariant(fmt.Sprintf("bucket %d elem %d prev link broken", count, j))
			}
			if havePrev && l.less(e.key, prevKey) {
				return l.invariant(fmt.Sprintf("order violated in bucket %d at elem %d", count, j))
			}
			prevKey, havePrev = e.key, true
			last, e = e, e.next
		}
		if b == l.back {
			if e != l.sentinel {
				return l.invariant("back bucket chain does not end at the sentinel")
			}
			if l.sentinel.prev != last {
				return l.invariant("sentinel prev link broken")
			}
		} else {
			if e != nil {
				return l.invariant(fmt.Sprintf("bucket %d chain longer than size %d", count, b.size))
			}
			if b.tail != last {
				return l.invariant(fmt.Sprintf("bucket %d tail mismatch", count))
			}
		}

		total += b.size
		count++
		prevBucket = b
	}

	if prevBucket != l.back {
		return l.invariant("bucket chain does not end at back")
	}
	if count != l.nbuckets {
		return l.invariant(fmt.Sprintf("bucket counter %d does not match %d chained buckets", l.nbuckets, count))
	}
	if total != l.size {
		return l.invariant(fmt.Sprintf("size %d does not match %d stored elements", l.size, total))
	}
	return nil
}

func (l *List[K]) invariant(detail string) error {
	return &engine.InvariantError{Kind: engine.KindList, Detail: detail}
}
