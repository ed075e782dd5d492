package bucketlist

import (
	"fmt"

	"github.com/hupe1980/sortedbucket/engine"
)

// Stats returns statistics about the list, including per-bucket logical
// sizes.
func (l *List[K]) Stats() engine.Stats {
	buckets := make([]engine.BucketStats, 0, l.nbuckets)
	i := 0
	for b := l.front; b != nil; b = b.next {
		buckets = append(buckets, engine.BucketStats{Index: i, Size: b.size})
		i++
	}

	return engine.Stats{
		Options: map[string]string{
			"Type":     engine.KindList.String(),
			"Capacity": fmt.Sprintf("%d", l.capacity),
		},
		Parameters: map[string]string{
			"Density": fmt.Sprintf("%d", l.density),
		},
		Storage: map[string]string{
			"Count":   fmt.Sprintf("%d", l.size),
			"Buckets": fmt.Sprintf("%d", l.nbuckets),
		},
		Buckets: buckets,
	}
}

// String returns a string representation of the list.
func (l *List[K]) String() string {
	stats := l.Stats()
	return fmt.Sprintf("List(Count=%s, Buckets=%s, Density=%s)",
		stats.Storage["Count"], stats.Storage["Buckets"], stats.Parameters["Density"])
}
