package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sort"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// UniformKeys generates num keys drawn uniformly from [0, keySpace).
// Collisions are expected and intended; shrink keySpace for duplicate-heavy
// workloads.
func (r *RNG) UniformKeys(num, keySpace int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]int, num)
	for i := range keys {
		keys[i] = r.rand.Intn(keySpace)
	}
	return keys
}

// ZipfKeys generates num keys in [0, keySpace) following Zipf's law:
// P(k) ∝ 1/k^s. A handful of keys dominate, which stresses the multiplicity
// handling of the tree engine and long equal runs in the bucket engines.
func (r *RNG) ZipfKeys(num, keySpace int, s float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Normalization constant (harmonic number with exponent s).
	var hns float64
	for i := 1; i <= keySpace; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	keys := make([]int, num)
	for i := range keys {
		u := r.rand.Float64() * hns
		var cumulative float64
		keys[i] = keySpace - 1
		for k := 1; k <= keySpace; k++ {
			cumulative += 1.0 / math.Pow(float64(k), s)
			if u <= cumulative {
				keys[i] = k - 1
				break
			}
		}
	}
	return keys
}

// Words returns num pseudo-random dictionary words, deterministic in seed.
// Duplicates are possible, matching real tokenized text.
func Words(seed int64, num int) []string {
	faker := gofakeit.New(seed)
	words := make([]string, num)
	for i := range words {
		words[i] = faker.Word()
	}
	return words
}

// Model is a reference multiset backed by a plain sorted slice. It is the
// ground truth the engines are compared against: obviously correct, O(n) per
// operation, and ordered by the same comparator semantics (equality derived
// from less).
type Model[K any] struct {
	keys []K
	less func(a, b K) bool
}

// NewModel creates an empty reference multiset ordered by less.
func NewModel[K any](less func(a, b K) bool) *Model[K] {
	return &Model[K]{less: less}
}

// Len returns the number of stored elements, counting duplicates.
func (m *Model[K]) Len() int {
	return len(m.keys)
}

// lowerBound returns the index of the first element not less than key.
func (m *Model[K]) lowerBound(key K) int {
	return sort.Search(len(m.keys), func(i int) bool {
		return !m.less(m.keys[i], key)
	})
}

// upperBound returns the index of the first element greater than key.
func (m *Model[K]) upperBound(key K) int {
	return sort.Search(len(m.keys), func(i int) bool {
		return m.less(key, m.keys[i])
	})
}

// equal reports comparator-derived equality.
func (m *Model[K]) equal(a, b K) bool {
	return !m.less(a, b) && !m.less(b, a)
}

// Add inserts n copies of key.
func (m *Model[K]) Add(key K, n int) {
	if n <= 0 {
		return
	}
	at := m.upperBound(key)
	for i := 0; i < n; i++ {
		m.keys = slices.Insert(m.keys, at, key)
	}
}

// Erase removes one copy of key and reports how many were removed.
func (m *Model[K]) Erase(key K) int {
	at := m.lowerBound(key)
	if at == len(m.keys) || !m.equal(m.keys[at], key) {
		return 0
	}
	m.keys = slices.Delete(m.keys, at, at+1)
	return 1
}

// EraseAll removes every copy of key and reports how many were removed.
func (m *Model[K]) EraseAll(key K) int {
	from, to := m.lowerBound(key), m.upperBound(key)
	m.keys = slices.Delete(m.keys, from, to)
	return to - from
}

// Contains reports whether at least one copy of key is stored.
func (m *Model[K]) Contains(key K) bool {
	at := m.lowerBound(key)
	return at < len(m.keys) && m.equal(m.keys[at], key)
}

// Rank returns the number of elements strictly less than key, or -1 when key
// is absent.
func (m *Model[K]) Rank(key K) int {
	at := m.lowerBound(key)
	if at == len(m.keys) || !m.equal(m.keys[at], key) {
		return -1
	}
	return at
}

// Count returns the number of stored copies of key.
func (m *Model[K]) Count(key K) int {
	return m.upperBound(key) - m.lowerBound(key)
}

// Min returns the smallest key, or false when empty.
func (m *Model[K]) Min() (K, bool) {
	var zero K
	if len(m.keys) == 0 {
		return zero, false
	}
	return m.keys[0], true
}

// Max returns the largest key, or false when empty.
func (m *Model[K]) Max() (K, bool) {
	var zero K
	if len(m.keys) == 0 {
		return zero, false
	}
	return m.keys[len(m.keys)-1], true
}

// Keys returns a copy of the sorted contents, duplicates included.
func (m *Model[K]) Keys() []K {
	return slices.Clone(m.keys)
}
