package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(cacheRequests)
}

var cacheRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pipeline_cache_requests_total",
		Help: "Run cache lookups partitioned by result (hit/miss).",
	},
	[]string{"result"},
)

func IncCacheRequest(result string) {
	cacheRequests.WithLabelValues(norm(result)).Inc()
}
