package cache

// Metrics receives a callback for every resolved access. Implementations
// must be cheap; the simulator calls them on the hot path.
type Metrics interface {
	Hit()
	Miss()
	Eviction(dirty bool)
	DirtyBytes(resident uint64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing. It is
// the default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                       {}
func (NoopMetrics) Miss()                      {}
func (NoopMetrics) Eviction(dirty bool)        {}
func (NoopMetrics) DirtyBytes(resident uint64) {}

var _ Metrics = NoopMetrics{}
