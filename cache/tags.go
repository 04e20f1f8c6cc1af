package cache

// A Line of a cache is the bookkeeping information that is associated with
// one block-sized slot. Age is the LRU recency counter: 0 means the line was
// the most recently used in its set.
type Line struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool
	IsDirty bool
	Age     uint64
}

// A Set is a fixed list of lines where a certain piece of memory can be
// stored at. Way order is stable and serves as the eviction tie-break.
type Set struct {
	Lines []Line
}

// A TagArray holds the lines of a cache, organized in sets.
type TagArray interface {
	GetSet(setID int) *Set
	Lookup(setID int, tag uint64) (wayID int, found bool)
	FindInvalid(setID int) (wayID int, found bool)
	Visit(setID, wayID int)
	Reset()
}

// NewTagArray creates a tag array with the given geometry. All lines start
// invalid.
func NewTagArray(geometry Geometry) TagArray {
	t := &tagArrayImpl{
		geometry: geometry,
	}

	t.Reset()

	return t
}

type tagArrayImpl struct {
	geometry Geometry
	sets     []Set
}

// GetSet returns the set with the given index.
func (t *tagArrayImpl) GetSet(setID int) *Set {
	return &t.sets[setID]
}

// Lookup finds the valid line in a set that holds the tag. Ways are scanned
// in order and the first match wins.
func (t *tagArrayImpl) Lookup(setID int, tag uint64) (wayID int, found bool) {
	set := &t.sets[setID]
	for i := range set.Lines {
		if set.Lines[i].IsValid && set.Lines[i].Tag == tag {
			return i, true
		}
	}

	return 0, false
}

// FindInvalid returns the lowest way in a set that does not hold a valid
// line.
func (t *tagArrayImpl) FindInvalid(setID int) (wayID int, found bool) {
	set := &t.sets[setID]
	for i := range set.Lines {
		if !set.Lines[i].IsValid {
			return i, true
		}
	}

	return 0, false
}

// Visit records a use of a line. The visited line's age drops to 0 and the
// age of every other line in the set grows by 1, which yields a total
// recency order without timestamps. Ages can only overflow after 2^64
// accesses to one set, far beyond trace scale.
func (t *tagArrayImpl) Visit(setID, wayID int) {
	set := &t.sets[setID]
	for i := range set.Lines {
		if i == wayID {
			set.Lines[i].Age = 0
		} else {
			set.Lines[i].Age++
		}
	}
}

// Reset marks all the lines in the array invalid.
func (t *tagArrayImpl) Reset() {
	t.sets = make([]Set, t.geometry.NumSets())
	for i := range t.sets {
		t.sets[i].Lines = make([]Line, t.geometry.Associativity)
		for j := range t.sets[i].Lines {
			t.sets[i].Lines[j].SetID = i
			t.sets[i].Lines[j].WayID = j
		}
	}
}
