package cache

// Builder can build cache simulators.
type Builder struct {
	geometry     Geometry
	victimFinder VictimFinder
	metrics      Metrics
}

// MakeBuilder creates a builder with a small direct-mapped default geometry.
func MakeBuilder() Builder {
	return Builder{
		geometry: Geometry{
			SetIndexBits:    4,
			BlockOffsetBits: 6,
			Associativity:   1,
		},
		victimFinder: NewLRUVictimFinder(),
		metrics:      NoopMetrics{},
	}
}

// WithSetIndexBits sets the number of set-index bits of the builder.
func (b Builder) WithSetIndexBits(s int) Builder {
	b.geometry.SetIndexBits = s
	return b
}

// WithBlockOffsetBits sets the number of block-offset bits of the builder.
func (b Builder) WithBlockOffsetBits(bits int) Builder {
	b.geometry.BlockOffsetBits = bits
	return b
}

// WithAssociativity sets the number of lines per set of the builder.
func (b Builder) WithAssociativity(e int) Builder {
	b.geometry.Associativity = e
	return b
}

// WithVictimFinder sets the replacement policy of the builder.
func (b Builder) WithVictimFinder(f VictimFinder) Builder {
	b.victimFinder = f
	return b
}

// WithMetrics sets the metrics backend of the builder.
func (b Builder) WithMetrics(m Metrics) Builder {
	b.metrics = m
	return b
}

// Build validates the geometry and creates the simulator. It returns a
// *ConfigError if the geometry cannot describe a cache.
func (b Builder) Build() (*Simulator, error) {
	if err := b.geometry.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		geometry:     b.geometry,
		tags:         NewTagArray(b.geometry),
		victimFinder: b.victimFinder,
		metrics:      b.metrics,
	}

	return s, nil
}
