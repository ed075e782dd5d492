package bucketarray

import (
	"fmt"

	"github.com/hupe1980/sortedbucket/engine"
)

// Stats returns statistics about the array, including per-bucket logical
// sizes.
func (a *Array[K]) Stats() engine.Stats {
	buckets := make([]engine.BucketStats, len(a.buckets))
	for i := range a.buckets {
		buckets[i] = engine.BucketStats{Index: i, Size: a.blen(i)}
	}

	return engine.Stats{
		Options: map[string]string{
			"Type":     engine.KindArray.String(),
			"Capacity": fmt.Sprintf("%d", a.capacity),
		},
		Parameters: map[string]string{
			"Density": fmt.Sprintf("%d", a.density),
		},
		Storage: map[string]string{
			"Count":   fmt.Sprintf("%d", a.size),
			"Buckets": fmt.Sprintf("%d", len(a.buckets)),
		},
		Buckets: buckets,
	}
}

// String returns a string representation of the array.
func (a *Array[K]) String() string {
	stats := a.Stats()
	return fmt.Sprintf("Array(Count=%s, Buckets=%s, Density=%s)",
		stats.Storage["Count"], stats.Storage["Buckets"], stats.Parameters["Density"])
}
