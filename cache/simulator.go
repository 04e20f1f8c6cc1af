package cache

// An Op is the kind of a memory access.
type Op int

// The two access kinds found in a memory trace.
const (
	OpLoad Op = iota
	OpStore
)

func (o Op) String() string {
	if o == OpStore {
		return "S"
	}

	return "L"
}

// An Outcome describes how one access resolved.
type Outcome struct {
	Hit           bool
	Eviction      bool
	DirtyEviction bool
}

func (o Outcome) String() string {
	switch {
	case o.Hit:
		return "hit"
	case o.Eviction:
		return "miss eviction"
	default:
		return "miss"
	}
}

// A Simulator resolves accesses against a cache of fixed geometry. It owns
// all the set and line storage for its lifetime and is not safe for
// concurrent use; a trace is strictly sequential.
type Simulator struct {
	geometry     Geometry
	tags         TagArray
	victimFinder VictimFinder
	metrics      Metrics

	stats Stats
}

// Geometry returns the geometry the simulator was built with.
func (s *Simulator) Geometry() Geometry {
	return s.geometry
}

// Snapshot returns a copy of the statistics accumulated so far.
func (s *Simulator) Snapshot() Stats {
	return s.stats
}

// Set exposes one set of the underlying tag array for inspection.
func (s *Simulator) Set(setID int) *Set {
	return s.tags.GetSet(setID)
}

// Process resolves a single access. The address must decode under the
// validated geometry; there is no runtime condition to recover from here.
func (s *Simulator) Process(op Op, addr uint64) Outcome {
	setID, tag := s.geometry.Decode(addr)

	if wayID, found := s.tags.Lookup(setID, tag); found {
		s.hit(op, setID, wayID)
		return Outcome{Hit: true}
	}

	return s.miss(op, setID, tag)
}

func (s *Simulator) hit(op Op, setID, wayID int) {
	s.tags.Visit(setID, wayID)

	line := &s.tags.GetSet(setID).Lines[wayID]
	if op == OpStore && !line.IsDirty {
		line.IsDirty = true
		s.stats.DirtyBytes += s.geometry.BlockSize()
	}

	s.stats.Hits++
	s.metrics.Hit()
	s.metrics.DirtyBytes(s.stats.DirtyBytes)
}

func (s *Simulator) miss(op Op, setID int, tag uint64) Outcome {
	outcome := Outcome{}

	wayID, found := s.tags.FindInvalid(setID)
	if !found {
		wayID = s.victimFinder.FindVictim(s.tags.GetSet(setID))
		outcome.Eviction = true
	}

	line := &s.tags.GetSet(setID).Lines[wayID]

	if outcome.Eviction && line.IsDirty {
		// Write-back of the whole block happens on eviction, so the
		// accounting moves a full block regardless of access sizes.
		s.stats.DirtyEvictions += s.geometry.BlockSize()
		s.stats.DirtyBytes -= s.geometry.BlockSize()
		line.IsDirty = false
		outcome.DirtyEviction = true
	}

	line.IsValid = true
	line.Tag = tag
	if !outcome.Eviction {
		line.IsDirty = false
	}
	s.tags.Visit(setID, wayID)

	// The new occupant's dirty state is independent of the evicted
	// predecessor's.
	if op == OpStore {
		line.IsDirty = true
		s.stats.DirtyBytes += s.geometry.BlockSize()
	}

	s.stats.Misses++
	if outcome.Eviction {
		s.stats.Evictions++
	}

	s.metrics.Miss()
	if outcome.Eviction {
		s.metrics.Eviction(outcome.DirtyEviction)
	}
	s.metrics.DirtyBytes(s.stats.DirtyBytes)

	return outcome
}
