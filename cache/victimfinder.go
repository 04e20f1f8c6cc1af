package cache

// A VictimFinder decides which line should be evicted when a set is full.
type VictimFinder interface {
	FindVictim(set *Set) (wayID int)
}

// LRUVictimFinder selects the least recently used line to evict.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed LRU victim finder.
func NewLRUVictimFinder() *LRUVictimFinder {
	f := new(LRUVictimFinder)
	return f
}

// FindVictim returns the way of the line with the largest age in the set.
// The scan keeps the first line at the current maximum, so ties break toward
// the lowest way. Downstream trace comparison depends on this order staying
// deterministic.
func (f *LRUVictimFinder) FindVictim(set *Set) (wayID int) {
	for i := range set.Lines {
		if set.Lines[i].Age > set.Lines[wayID].Age {
			wayID = i
		}
	}

	return wayID
}
