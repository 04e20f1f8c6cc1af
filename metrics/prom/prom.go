// Package prom exports cache simulation metrics as Prometheus collectors.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/csim/cache"
)

// Adapter implements cache.Metrics on top of Prometheus counters/gauges.
type Adapter struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	evictions  *prometheus.CounterVec
	dirtyBytes prometheus.Gauge
}

// New constructs a Prometheus metrics adapter registered with reg. A nil reg
// falls back to the default registerer.
func New(reg prometheus.Registerer, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "csim",
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "csim",
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "csim",
				Name:        "evictions_total",
				Help:        "Cache evictions by victim dirtiness",
				ConstLabels: constLabels,
			},
			[]string{"victim"},
		),
		dirtyBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "csim",
			Name:        "dirty_bytes",
			Help:        "Modified bytes currently resident in the cache",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(a.hits, a.misses, a.evictions, a.dirtyBytes)

	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Eviction increments the eviction counter for the victim kind.
func (a *Adapter) Eviction(dirty bool) {
	victim := "clean"
	if dirty {
		victim = "dirty"
	}

	a.evictions.WithLabelValues(victim).Inc()
}

// DirtyBytes sets the resident dirty-byte gauge.
func (a *Adapter) DirtyBytes(resident uint64) {
	a.dirtyBytes.Set(float64(resident))
}

var _ cache.Metrics = (*Adapter)(nil)
