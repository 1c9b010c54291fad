package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIncProviderError(t *testing.T) {
	before := testutil.ToFloat64(providerErrors.WithLabelValues("visuals"))
	IncProviderError(" Visuals ")
	IncProviderError("visuals")
	after := testutil.ToFloat64(providerErrors.WithLabelValues("visuals"))
	if after-before != 2 {
		t.Fatalf("expected 2 increments, got %v", after-before)
	}
}

func TestSetProviderMode(t *testing.T) {
	SetProviderMode("Speech", "Demo")
	if got := testutil.ToFloat64(providerMode.WithLabelValues("speech", "demo")); got != 1 {
		t.Fatalf("expected mode gauge 1, got %v", got)
	}
}
