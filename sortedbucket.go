package sortedbucket

import (
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/hupe1980/sortedbucket/engine"
	"github.com/hupe1980/sortedbucket/engine/bucketarray"
	"github.com/hupe1980/sortedbucket/engine/bucketlist"
	"github.com/hupe1980/sortedbucket/engine/rbtree"
)

// Multiset is an ordered multiset with order-statistics queries, backed by
// one of the three engines. Instances are created through the fluent
// builders (Tree, Array, List and their Ordered variants) and are not safe
// for concurrent use.
//
// Absence is signalled in-band: Rank returns -1, Erase and EraseAll return
// 0, Min and Max return false. Errors exist only for construction and
// diagnostics.
type Multiset[K any] struct {
	engine  engine.Interface[K]
	kind    engine.Kind
	metrics MetricsCollector
	logger  *Logger
}

// newMultiset wraps a constructed engine. Internal; external users go
// through the builders.
func newMultiset[K any](eng engine.Interface[K], kind engine.Kind, optFns ...Option) *Multiset[K] {
	opts := applyOptions(optFns)
	return &Multiset[K]{
		engine:  eng,
		kind:    kind,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
}

// Kind returns which engine backs the multiset.
func (ms *Multiset[K]) Kind() engine.Kind {
	return ms.kind
}

// Len returns the number of stored elements, duplicates included.
func (ms *Multiset[K]) Len() int {
	return ms.engine.Len()
}

// Insert adds one copy of key.
func (ms *Multiset[K]) Insert(key K) {
	start := time.Now()
	ms.engine.Add(key, 1)
	ms.metrics.RecordInsert(1, time.Since(start))
	ms.logger.LogInsert(key, 1)
}

// InsertN adds n copies of key. Non-positive n is a no-op.
func (ms *Multiset[K]) InsertN(key K, n int) {
	start := time.Now()
	ms.engine.Add(key, n)
	ms.metrics.RecordInsert(max(n, 0), time.Since(start))
	ms.logger.LogInsert(key, max(n, 0))
}

// InsertSeq adds one copy per element of seq.
func (ms *Multiset[K]) InsertSeq(seq iter.Seq[K]) {
	start := time.Now()
	count := 0
	for key := range seq {
		ms.engine.Add(key, 1)
		count++
	}
	ms.metrics.RecordInsert(count, time.Since(start))
	ms.logger.LogInsertSeq(count)
}

// Erase removes one occurrence of key and reports how many were removed,
// 0 or 1.
func (ms *Multiset[K]) Erase(key K) int {
	start := time.Now()
	removed := ms.engine.Erase(key)
	ms.metrics.RecordErase(removed, time.Since(start))
	ms.logger.LogErase(key, removed)
	return removed
}

// EraseAll removes every occurrence of key and reports how many were
// removed.
func (ms *Multiset[K]) EraseAll(key K) int {
	start := time.Now()
	removed := ms.engine.EraseAll(key)
	ms.metrics.RecordErase(removed, time.Since(start))
	ms.logger.LogErase(key, removed)
	return removed
}

// Contains reports whether at least one copy of key is stored.
func (ms *Multiset[K]) Contains(key K) bool {
	start := time.Now()
	ok := ms.engine.Contains(key)
	ms.metrics.RecordQuery(time.Since(start))
	return ok
}

// Rank returns the number of elements strictly ordered before key, or -1
// when key is absent.
func (ms *Multiset[K]) Rank(key K) int {
	start := time.Now()
	rank := ms.engine.Rank(key)
	ms.metrics.RecordQuery(time.Since(start))
	ms.logger.LogRank(key, rank)
	return rank
}

// Min returns the smallest key, or false when the multiset is empty.
func (ms *Multiset[K]) Min() (K, bool) {
	start := time.Now()
	key, ok := ms.engine.Min()
	ms.metrics.RecordQuery(time.Since(start))
	return key, ok
}

// Max returns the largest key, or false when the multiset is empty.
func (ms *Multiset[K]) Max() (K, bool) {
	start := time.Now()
	key, ok := ms.engine.Max()
	ms.metrics.RecordQuery(time.Since(start))
	return key, ok
}

// Ascend iterates all elements in ascending order, duplicates included.
func (ms *Multiset[K]) Ascend() iter.Seq[K] {
	return func(yield func(K) bool) {
		start := time.Now()
		count := 0
		for key := range ms.engine.Ascend() {
			if !yield(key) {
				break
			}
			count++
		}
		ms.metrics.RecordTraversal(count, time.Since(start))
	}
}

// Descend iterates all elements in descending order, duplicates included.
func (ms *Multiset[K]) Descend() iter.Seq[K] {
	return func(yield func(K) bool) {
		start := time.Now()
		count := 0
		for key := range ms.engine.Descend() {
			if !yield(key) {
				break
			}
			count++
		}
		ms.metrics.RecordTraversal(count, time.Since(start))
	}
}

// Stats returns statistics about the underlying engine.
func (ms *Multiset[K]) Stats() engine.Stats {
	return ms.engine.Stats()
}

// Validate runs the engine's full invariant sweep. It is diagnostic, O(n),
// and never called by the operations themselves.
func (ms *Multiset[K]) Validate() error {
	err := ms.engine.Validate()
	ms.logger.LogValidate(ms.kind, err)
	return err
}

// Dump writes a human-readable rendering of the engine's structure to w.
func (ms *Multiset[K]) Dump(w io.Writer) error {
	return ms.engine.Dump(w)
}

// Clone returns a deep copy with identical contents and configuration. The
// copy shares the logger and metrics collector, nothing else.
func (ms *Multiset[K]) Clone() *Multiset[K] {
	c := &Multiset[K]{
		kind:    ms.kind,
		metrics: ms.metrics,
		logger:  ms.logger,
	}
	switch e := ms.engine.(type) {
	case *rbtree.Tree[K]:
		c.engine = e.Clone()
	case *bucketarray.Array[K]:
		c.engine = e.Clone()
	case *bucketlist.List[K]:
		c.engine = e.Clone()
	default:
		// Unreachable: builders only construct the three engines above.
		panic(fmt.Sprintf("sortedbucket: cannot clone engine %T", ms.engine))
	}
	return c
}

// String returns a one-line summary.
func (ms *Multiset[K]) String() string {
	return fmt.Sprintf("Multiset(Kind=%s, Count=%d)", ms.kind, ms.engine.Len())
}
