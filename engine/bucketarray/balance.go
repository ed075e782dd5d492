package bucketarray

import "slices"

// balanceAfterInsert restores the size bound of bucket i after a single
// insertion at logical index idx and returns the element's post-balance
// location. A bucket only grows here, so a split is the only possible
// restructuring and a single one suffices.
func (a *Array[K]) balanceAfterInsert(i, idx int) (int, int) {
	if a.blen(i) > 2*a.density {
		a.split(i)
		if idx >= a.density {
			return i + 1, idx - a.density
		}
	}
	return i, idx
}

// balance restores the size bounds at bucket i after an erase or a density
// change. It reports whether the bucket at i was merged into its successor,
// in which case index i now refers to the combined bucket and the caller
// must re-examine it.
func (a *Array[K]) balance(i int) bool {
	if i >= len(a.buckets) {
		return false
	}
	a.dropEmptyRight(i)
	switch {
	case a.blen(i) > 2*a.density:
		a.split(i)
	case a.blen(i) < (a.density+1)/2 && i < a.last():
		// The last bucket is exempt from the undersize rule.
		return a.merge(i)
	}
	return false
}

// dropEmptyRight removes the run of empty buckets immediately after bucket
// i. The last bucket is never removed; it owns the sentinel and may stay
// logically empty.
func (a *Array[K]) dropEmptyRight(i int) {
	j := i + 1
	for j < a.last() && len(a.buckets[j]) == 0 {
		j++
	}
	if j > i+1 {
		a.buckets = slices.Delete(a.buckets, i+1, j)
	}
}

// split moves the physical upper half of bucket i, starting at density,
// into a fresh bucket inserted right after it. When i is the last bucket
// the sentinel travels with the upper half, so the new bucket becomes the
// sentinel holder.
func (a *Array[K]) split(i int) {
	upper := slices.Clone(a.buckets[i][a.density:])
	a.buckets[i] = a.buckets[i][:a.density]
	a.buckets = slices.Insert(a.buckets, i+1, upper)
}

// merge resolves an undersized bucket i against its right neighbor. If a
// full merge would overflow 2*density, half of the neighbor's surplus is
// pulled leftward instead; otherwise the whole bucket is prepended to the
// neighbor and dropped, which is reported as true.
func (a *Array[K]) merge(i int) bool {
	next := i + 1
	if a.blen(i)+a.blen(next) > 2*a.density {
		desired := (a.blen(next) - a.blen(i)) / 2
		a.buckets[i] = append(a.buckets[i], a.buckets[next][:desired]...)
		a.buckets[next] = slices.Delete(a.buckets[next], 0, desired)
		return false
	}
	a.buckets[next] = slices.Insert(a.buckets[next], 0, a.buckets[i]...)
	a.buckets = slices.Delete(a.buckets, i, next)
	return true
}
