package cache

// Stats accumulates the outcome counters of a simulation. DirtyBytes is the
// number of modified bytes currently resident in the cache; DirtyEvictions
// is the cumulative number of bytes that were evicted while dirty.
type Stats struct {
	Hits           uint64
	Misses         uint64
	Evictions      uint64
	DirtyBytes     uint64
	DirtyEvictions uint64
}
