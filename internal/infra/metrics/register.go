// Package metrics exposes the pipeline's Prometheus collectors: run and
// stage counters, stage latency histograms, provider mode gauges and cache
// hit rates. Files declare their collectors in init() via register; the
// server calls MustRegister once before mounting the /metrics handler.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once
	pending      []prometheus.Collector
)

func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// MustRegister flushes every pending collector to the default registry.
// Safe to call more than once; only the first call registers.
func MustRegister() {
	registerOnce.Do(func() {
		if len(pending) > 0 {
			prometheus.MustRegister(pending...)
		}
	})
}
