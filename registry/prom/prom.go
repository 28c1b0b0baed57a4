// Package prom exports registry metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.lepak.sg/stacklist/registry"
)

// Adapter implements registry.Metrics with Prometheus counters and a gauge.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	reorders prometheus.Counter
	size     prometheus.Gauge
}

// New constructs an Adapter and registers its metrics with reg
// (nil => prometheus.DefaultRegisterer) under namespace ns and
// subsystem sub.
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}

	a := &Adapter{
		hits:     counter("hits_total", "Lookups of held identifiers"),
		misses:   counter("misses_total", "Lookups of identifiers not held"),
		reorders: counter("reorders_total", "Operations that changed the order"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of identifiers held",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.reorders, a.size)
	return a
}

func (a *Adapter) Hit()     { a.hits.Inc() }
func (a *Adapter) Miss()    { a.misses.Inc() }
func (a *Adapter) Reorder() { a.reorders.Inc() }

func (a *Adapter) Size(entries int) {
	a.size.Set(float64(entries))
}

var _ registry.Metrics = (*Adapter)(nil)
