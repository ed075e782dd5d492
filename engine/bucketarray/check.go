package bucketarray

import (
	"fmt"

	"github.com/hupe1980/sortedbucket/engine"
)

// Validate checks the structural invariants: the sentinel slot exists, every
// bucket except possibly the last has a logical size within
// [ceil(density/2), 2*density], no bucket exceeds 2*density, all elements
// are in non-decreasing order across bucket boundaries, and the tracked
// element count matches the stored elements. Intended for tests and
// debugging; it runs in O(n).
func (a *Array[K]) Validate() error {
	if len(a.buckets) == 0 {
		return a.invariant("no buckets")
	}
	if a.density < 1 {
		return a.invariant(fmt.Sprintf("density %d below 1", a.density))
	}
	if len(a.buckets[a.last()]) < 1 {
		return a.invariant("last bucket lost its sentinel slot")
	}

	lower, upper := (a.density+1)/2, 2*a.density
	total := 0
	var prev K
	havePrev := false
	for i := range a.buckets {
		n := a.blen(i)
		if i < a.last() && n < lower {
			return a.invariant(fmt.Sprintf("bucket %d size %d below %d", i, n, lower))
		}
		if n > upper {
			return a.invariant(fmt.Sprintf("bucket %d size %d above %d", i, n, upper))
		}
		for j := 0; j < n; j++ {
			key := a.buckets[i][j]
			if havePrev && a.less(key, prev) {
				return a.invariant(fmt.Sprintf("order violated in bucket %d at offset %d", i, j))
			}
			prev, havePrev = key, true
		}
		total += n
	}

	if total != a.size {
		return a.invariant(fmt.Sprintf("size %d does not match %d stored elements", a.size, total))
	}
	return nil
}

func (a *Array[K]) invariant(detail string) error {
	return &engine.InvariantError{Kind: engine.KindArray, Detail: detail}
}
