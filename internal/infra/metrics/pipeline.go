package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		pipelineRuns,
		stageLatencyMs,
		stageFailures,
		uploadsTotal,
		runsPruned,
	)
}

var (
	pipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Pipeline runs by terminal status (completed/failed).",
		},
		[]string{"status"},
	)

	stageLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_latency_ms",
			Help:    "Stage execution latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 15000, 45000},
		},
		[]string{"stage", "success"},
	)

	stageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_failures_total",
			Help: "Stage failures per stage key.",
		},
		[]string{"stage"},
	)

	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_uploads_total",
			Help: "Upload outcomes by variant (queued/uploaded/scheduled).",
		},
		[]string{"status"},
	)

	runsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_runs_pruned_total",
			Help: "Run records removed by the retention worker.",
		},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncRun(status string) {
	pipelineRuns.WithLabelValues(norm(status)).Inc()
}

func ObserveStage(stage string, latencyMs int64, success bool) {
	stageLatencyMs.WithLabelValues(norm(stage), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
	if !success {
		stageFailures.WithLabelValues(norm(stage)).Inc()
	}
}

func IncUpload(status string) {
	uploadsTotal.WithLabelValues(norm(status)).Inc()
}

func AddRunsPruned(n int64) {
	if n > 0 {
		runsPruned.Add(float64(n))
	}
}
