// This file implements engine-specific fluent builder APIs for creating and
// configuring Multiset instances. Builders are immutable - each method
// returns a new builder with the updated configuration.

package sortedbucket

import (
	"cmp"
	"iter"
	"slices"

	"github.com/hupe1980/sortedbucket/engine"
	"github.com/hupe1980/sortedbucket/engine/bucketarray"
	"github.com/hupe1980/sortedbucket/engine/bucketlist"
	"github.com/hupe1980/sortedbucket/engine/rbtree"
)

// facadeOptions assembles the facade options a builder collected.
func facadeOptions(logger *Logger, metrics MetricsCollector) []Option {
	var optFns []Option
	if logger != nil {
		optFns = append(optFns, WithLogger(logger))
	}
	if metrics != nil {
		optFns = append(optFns, WithMetricsCollector(metrics))
	}
	return optFns
}

// =============================================================================
// Tree Builder (Immutable)
// =============================================================================

// Tree creates a builder for a weighted red-black tree multiset ordered by
// less. Duplicate keys collapse into one node with a multiplicity counter,
// giving O(log distinct) operations regardless of duplication.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	ms, err := sortedbucket.Tree[user](func(a, b user) bool {
//	    return a.id < b.id
//	}).
//	    Capacity(100000).
//	    Build()
func Tree[K any](less engine.LessFunc[K]) TreeBuilder[K] {
	return TreeBuilder[K]{
		less: less,
	}
}

// TreeOrdered creates a tree builder for an ordered key type, using cmp.Less
// for ordering and == for grouping duplicates.
func TreeOrdered[K cmp.Ordered]() TreeBuilder[K] {
	return TreeBuilder[K]{
		less:  cmp.Less[K],
		equal: func(a, b K) bool { return a == b },
	}
}

// TreeBuilder is an immutable fluent builder for tree-backed Multiset
// instances. Each method returns a new builder with the updated
// configuration.
type TreeBuilder[K any] struct {
	less     engine.LessFunc[K]
	equal    engine.EqualFunc[K]
	capacity int
	items    []K
	logger   *Logger
	metrics  MetricsCollector
}

// Equal sets the grouping predicate deciding which keys collapse into the
// same node. A predicate coarser than the ordering induces groups adjacent
// order classes; a finer one keeps order-tied keys as separate nodes.
// Default: derived from the ordering (TreeOrdered: ==).
func (b TreeBuilder[K]) Equal(equal engine.EqualFunc[K]) TreeBuilder[K] {
	b.equal = equal
	return b
}

// Capacity sets the expected number of distinct keys. It only pre-sizes the
// node arena.
func (b TreeBuilder[K]) Capacity(n int) TreeBuilder[K] {
	b.capacity = n
	return b
}

// From appends the elements of seq to the initial contents.
func (b TreeBuilder[K]) From(seq iter.Seq[K]) TreeBuilder[K] {
	b.items = slices.AppendSeq(slices.Clone(b.items), seq)
	return b
}

// Items appends keys to the initial contents.
func (b TreeBuilder[K]) Items(keys ...K) TreeBuilder[K] {
	b.items = append(slices.Clone(b.items), keys...)
	return b
}

// Logger sets the structured logger for operation tracing.
func (b TreeBuilder[K]) Logger(l *Logger) TreeBuilder[K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b TreeBuilder[K]) Metrics(mc MetricsCollector) TreeBuilder[K] {
	b.metrics = mc
	return b
}

// Build creates the tree-backed Multiset instance.
func (b TreeBuilder[K]) Build() (*Multiset[K], error) {
	eng, err := rbtree.New(b.less, func(o *rbtree.Options[K]) {
		o.Equal = b.equal
		o.Capacity = b.capacity
	})
	if err != nil {
		return nil, translateError(err)
	}
	if len(b.items) > 0 {
		eng.InsertSeq(slices.Values(b.items))
	}

	ms := newMultiset[K](eng, engine.KindTree, facadeOptions(b.logger, b.metrics)...)
	ms.logger.LogBuild(engine.KindTree, ms.Len())
	return ms, nil
}

// MustBuild creates the Multiset instance, panicking on error.
func (b TreeBuilder[K]) MustBuild() *Multiset[K] {
	ms, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ms
}

// =============================================================================
// Array Builder (Immutable)
// =============================================================================

// Array creates a builder for a bucket-array multiset ordered by less. Keys
// live in sorted slices sized around a configured density; lookups are
// binary searches on both levels.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	ms, err := sortedbucket.Array[string](func(a, b string) bool {
//	    return len(a) < len(b)
//	}).
//	    Density(500).
//	    Build()
func Array[K any](less engine.LessFunc[K]) ArrayBuilder[K] {
	return ArrayBuilder[K]{
		less: less,
	}
}

// ArrayOrdered creates an array builder for an ordered key type.
func ArrayOrdered[K cmp.Ordered]() ArrayBuilder[K] {
	return ArrayBuilder[K]{
		less: cmp.Less[K],
	}
}

// ArrayBuilder is an immutable fluent builder for array-backed Multiset
// instances. Each method returns a new builder with the updated
// configuration.
type ArrayBuilder[K any] struct {
	less     engine.LessFunc[K]
	density  int
	capacity int
	items    []K
	logger   *Logger
	metrics  MetricsCollector
}

// Density sets the target bucket size d. Buckets are kept between half and
// twice this size. Default: 500, or derived from Capacity when set.
func (b ArrayBuilder[K]) Density(d int) ArrayBuilder[K] {
	b.density = d
	return b
}

// Capacity sets the expected element count. When Density is not set
// explicitly, the density becomes max(500, ceil(sqrt(capacity))).
func (b ArrayBuilder[K]) Capacity(n int) ArrayBuilder[K] {
	b.capacity = n
	return b
}

// From appends the elements of seq to the initial contents.
func (b ArrayBuilder[K]) From(seq iter.Seq[K]) ArrayBuilder[K] {
	b.items = slices.AppendSeq(slices.Clone(b.items), seq)
	return b
}

// Items appends keys to the initial contents.
func (b ArrayBuilder[K]) Items(keys ...K) ArrayBuilder[K] {
	b.items = append(slices.Clone(b.items), keys...)
	return b
}

// Logger sets the structured logger for operation tracing.
func (b ArrayBuilder[K]) Logger(l *Logger) ArrayBuilder[K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b ArrayBuilder[K]) Metrics(mc MetricsCollector) ArrayBuilder[K] {
	b.metrics = mc
	return b
}

// Build creates the array-backed Multiset instance.
func (b ArrayBuilder[K]) Build() (*Multiset[K], error) {
	eng, err := bucketarray.New(b.less, func(o *bucketarray.Options[K]) {
		o.Density = b.density
		o.Capacity = b.capacity
	})
	if err != nil {
		return nil, translateError(err)
	}
	if len(b.items) > 0 {
		eng.InsertSeq(slices.Values(b.items))
	}

	ms := newMultiset[K](eng, engine.KindArray, facadeOptions(b.logger, b.metrics)...)
	ms.logger.LogBuild(engine.KindArray, ms.Len())
	return ms, nil
}

// MustBuild creates the Multiset instance, panicking on error.
func (b ArrayBuilder[K]) MustBuild() *Multiset[K] {
	ms, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ms
}

// =============================================================================
// List Builder (Immutable)
// =============================================================================

// List creates a builder for a bucket-list multiset ordered by less. Keys
// live in linked buckets of linked nodes; rebalancing splices nodes without
// copying, so element handles obtained from the engine package stay stable.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	ms, err := sortedbucket.List[event](func(a, b event) bool {
//	    return a.ts.Before(b.ts)
//	}).
//	    Density(200).
//	    Build()
func List[K any](less engine.LessFunc[K]) ListBuilder[K] {
	return ListBuilder[K]{
		less: less,
	}
}

// ListOrdered creates a list builder for an ordered key type.
func ListOrdered[K cmp.Ordered]() ListBuilder[K] {
	return ListBuilder[K]{
		less: cmp.Less[K],
	}
}

// ListBuilder is an immutable fluent builder for list-backed Multiset
// instances. Each method returns a new builder with the updated
// configuration.
type ListBuilder[K any] struct {
	less     engine.LessFunc[K]
	density  int
	capacity int
	items    []K
	logger   *Logger
	metrics  MetricsCollector
}

// Density sets the target bucket size d. Buckets are kept between half and
// twice this size. Default: 500, or derived from Capacity when set.
func (b ListBuilder[K]) Density(d int) ListBuilder[K] {
	b.density = d
	return b
}

// Capacity sets the expected element count. When Density is not set
// explicitly, the density becomes max(500, ceil(sqrt(capacity))).
func (b ListBuilder[K]) Capacity(n int) ListBuilder[K] {
	b.capacity = n
	return b
}

// From appends the elements of seq to the initial contents.
func (b ListBuilder[K]) From(seq iter.Seq[K]) ListBuilder[K] {
	b.items = slices.AppendSeq(slices.Clone(b.items), seq)
	return b
}

// Items appends keys to the initial contents.
func (b ListBuilder[K]) Items(keys ...K) ListBuilder[K] {
	b.items = append(slices.Clone(b.items), keys...)
	return b
}

// Logger sets the structured logger for operation tracing.
func (b ListBuilder[K]) Logger(l *Logger) ListBuilder[K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b ListBuilder[K]) Metrics(mc MetricsCollector) ListBuilder[K] {
	b.metrics = mc
	return b
}

// Build creates the list-backed Multiset instance.
func (b ListBuilder[K]) Build() (*Multiset[K], error) {
	eng, err := bucketlist.New(b.less, func(o *bucketlist.Options[K]) {
		o.Density = b.density
		o.Capacity = b.capacity
	})
	if err != nil {
		return nil, translateError(err)
	}
	if len(b.items) > 0 {
		eng.InsertSeq(slices.Values(b.items))
	}

	ms := newMultiset[K](eng, engine.KindList, facadeOptions(b.logger, b.metrics)...)
	ms.logger.LogBuild(engine.KindList, ms.Len())
	return ms, nil
}

// MustBuild creates the Multiset instance, panicking on error.
func (b ListBuilder[K]) MustBuild() *Multiset[K] {
	ms, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ms
}
