// Package engine provides the shared contract for sorted bucket engines.
package engine

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
)

var (
	// ErrNilLess is returned when an engine is constructed without an ordering function.
	ErrNilLess = errors.New("engine: less function must not be nil")

	// ErrInvalidDensity is returned when a bucket density is negative.
	ErrInvalidDensity = errors.New("engine: density must not be negative")

	// ErrInvalidCapacity is returned when a capacity hint is negative.
	ErrInvalidCapacity = errors.New("engine: capacity must not be negative")
)

// InvariantError is a named error type for a structural invariant violation
// detected by Validate.
type InvariantError struct {
	Kind   Kind   // Engine that detected the violation
	Detail string // Description of the violated invariant
}

// Error returns the error message for an invariant violation.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s invariant violated: %s", e.Kind, e.Detail)
}

// LessFunc reports whether a is strictly ordered before b.
type LessFunc[K any] func(a, b K) bool

// EqualFunc reports whether a and b belong to the same key group.
type EqualFunc[K any] func(a, b K) bool

// DeriveEqual returns the equivalence induced by less: two keys are equal when
// neither is ordered before the other.
func DeriveEqual[K any](less LessFunc[K]) EqualFunc[K] {
	return func(a, b K) bool {
		return !less(a, b) && !less(b, a)
	}
}

// Kind represents the storage engine backing a sorted bucket container.
type Kind int

// Constants representing the available storage engines.
const (
	KindTree Kind = iota
	KindArray
	KindList
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindTree:
		return "Tree"
	case KindArray:
		return "Array"
	case KindList:
		return "List"
	default:
		return "Unknown"
	}
}

// DefaultDensity is the bucket density used when no capacity hint is given.
const DefaultDensity = 500

// DensityForCapacity derives a bucket density from an expected element count.
// The density is the square root of the capacity, floored at DefaultDensity,
// so that bucket count and bucket size grow together.
func DensityForCapacity(capacity int) int {
	d := int(math.Ceil(math.Sqrt(float64(capacity))))
	if d < DefaultDensity {
		return DefaultDensity
	}
	return d
}

// BucketStats describes a single bucket of a bucketed engine.
type BucketStats struct {
	// Index is the position of the bucket in bucket order.
	Index int

	// Size is the number of elements stored in the bucket.
	Size int
}

// Stats is a structured snapshot of an engine's configuration and shape.
type Stats struct {
	// Options holds the construction-time settings of the engine.
	Options map[string]string

	// Parameters holds derived tuning values such as the active density.
	Parameters map[string]string

	// Storage holds backing storage counters such as node or bucket counts.
	Storage map[string]string

	// Buckets lists per-bucket sizes for bucketed engines, nil for the tree.
	Buckets []BucketStats
}

// Interface is the position-free contract shared by all engines. Positional
// lookups and iterator handles are engine specific and live on the concrete
// types.
type Interface[K any] interface {
	// Len returns the number of stored elements, counting duplicates.
	Len() int

	// Add inserts n copies of key. It is a no-op when n is not positive.
	Add(key K, n int)

	// Erase removes a single copy of key and reports how many were removed.
	Erase(key K) int

	// EraseAll removes every copy of key and reports how many were removed.
	EraseAll(key K) int

	// Contains reports whether at least one copy of key is stored.
	Contains(key K) bool

	// Rank returns the number of elements strictly ordered before key, or -1
	// when key is absent.
	Rank(key K) int

	// Min returns the smallest key, or false when the container is empty.
	Min() (K, bool)

	// Max returns the largest key, or false when the container is empty.
	Max() (K, bool)

	// Ascend iterates all elements in ascending order, duplicates included.
	Ascend() iter.Seq[K]

	// Descend iterates all elements in descending order, duplicates included.
	Descend() iter.Seq[K]

	// Stats returns a structured snapshot of the engine's shape.
	Stats() Stats

	// Validate checks the engine's structural invariants.
	Validate() error

	// Dump writes a human-readable rendering of the backing structure to w.
	Dump(w io.Writer) error
}
