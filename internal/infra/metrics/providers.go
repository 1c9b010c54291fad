package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(providerMode, providerErrors)
}

var (
	providerMode = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_provider_mode",
			Help: "1 for the active mode of each capability (live/demo).",
		},
		[]string{"capability", "mode"},
	)

	providerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_provider_errors_total",
			Help: "Provider call failures per capability.",
		},
		[]string{"capability"},
	)
)

// SetProviderMode records which implementation backs a capability at boot.
func SetProviderMode(capability, mode string) {
	providerMode.WithLabelValues(norm(capability), norm(mode)).Set(1)
}

func IncProviderError(capability string) {
	providerErrors.WithLabelValues(norm(capability)).Inc()
}
