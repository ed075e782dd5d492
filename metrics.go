package sortedbucket

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// A collector may be shared across container instances; implementations must
// be safe for concurrent use even though each container is single-threaded.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter  prometheus.Counter
//	    queryHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(copies int, duration time.Duration) {
//	    p.insertCounter.Add(float64(copies))
//	    // ... record duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// copies is the number of logical copies added.
	RecordInsert(copies int, duration time.Duration)

	// RecordErase is called after each erase operation.
	// removed is the number of elements removed, possibly 0.
	RecordErase(removed int, duration time.Duration)

	// RecordQuery is called after each point query (Contains, Rank, Min, Max).
	RecordQuery(duration time.Duration)

	// RecordTraversal is called after each Ascend or Descend completes or is
	// abandoned. elements is the number of elements yielded.
	RecordTraversal(elements int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(int, time.Duration)    {}
func (NoopMetricsCollector) RecordErase(int, time.Duration)     {}
func (NoopMetricsCollector) RecordQuery(time.Duration)          {}
func (NoopMetricsCollector) RecordTraversal(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount        atomic.Int64
	InsertCopies       atomic.Int64
	InsertTotalNanos   atomic.Int64
	EraseCount         atomic.Int64
	EraseRemoved       atomic.Int64
	EraseTotalNanos    atomic.Int64
	QueryCount         atomic.Int64
	QueryTotalNanos    atomic.Int64
	TraversalCount     atomic.Int64
	TraversalElements  atomic.Int64
	TraversalTotalNano atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(copies int, duration time.Duration) {
	b.InsertCount.Add(1)
	b.InsertCopies.Add(int64(copies))
	b.InsertTotalNanos.Add(duration.Nanoseconds())
}

// RecordErase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordErase(removed int, duration time.Duration) {
	b.EraseCount.Add(1)
	b.EraseRemoved.Add(int64(removed))
	b.EraseTotalNanos.Add(duration.Nanoseconds())
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// RecordTraversal implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTraversal(elements int, duration time.Duration) {
	b.TraversalCount.Add(1)
	b.TraversalElements.Add(int64(elements))
	b.TraversalTotalNano.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:       b.InsertCount.Load(),
		InsertCopies:      b.InsertCopies.Load(),
		InsertAvgNanos:    avgNanos(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		EraseCount:        b.EraseCount.Load(),
		EraseRemoved:      b.EraseRemoved.Load(),
		EraseAvgNanos:     avgNanos(b.EraseTotalNanos.Load(), b.EraseCount.Load()),
		QueryCount:        b.QueryCount.Load(),
		QueryAvgNanos:     avgNanos(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		TraversalCount:    b.TraversalCount.Load(),
		TraversalElements: b.TraversalElements.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount       int64
	InsertCopies      int64
	InsertAvgNanos    int64
	EraseCount        int64
	EraseRemoved      int64
	EraseAvgNanos     int64
	QueryCount        int64
	QueryAvgNanos     int64
	TraversalCount    int64
	TraversalElements int64
}
