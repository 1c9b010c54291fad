package analysis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"
)

type countingAnalyzer struct {
	inFlight int32
	peak     int32
}

func (c *countingAnalyzer) enter() {
	n := atomic.AddInt32(&c.inFlight, 1)
	for {
		peak := atomic.LoadInt32(&c.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&c.peak, peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
}

func (c *countingAnalyzer) AnalyzeScript(ctx context.Context, script, language string) (*adapter.ScriptAnalysis, error) {
	c.enter()
	return &adapter.ScriptAnalysis{}, nil
}

func (c *countingAnalyzer) GenerateSeo(ctx context.Context, projectName, script string, analysis *adapter.ScriptAnalysis) (*model.SeoMetadata, error) {
	c.enter()
	return &model.SeoMetadata{}, nil
}

func TestLimitedAnalyzer_CapsConcurrency(t *testing.T) {
	t.Parallel()

	inner := &countingAnalyzer{}
	limited := NewLimitedAnalyzer(inner, 3)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = limited.AnalyzeScript(context.Background(), "script", "en-US")
		}()
	}
	wg.Wait()

	if peak := atomic.LoadInt32(&inner.peak); peak > 3 {
		t.Fatalf("limit breached: %d concurrent calls", peak)
	}
}

func TestLimitedAnalyzer_HonorsContext(t *testing.T) {
	t.Parallel()

	inner := &countingAnalyzer{}
	limited := NewLimitedAnalyzer(inner, 1)

	// hold the only slot
	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		l := limited.(*limitedAnalyzer)
		l.sem <- struct{}{}
		close(held)
		<-release
		<-l.sem
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := limited.AnalyzeScript(ctx, "script", "en-US"); err == nil {
		t.Fatal("expected a context error while the slot is held")
	}
	close(release)
}

func TestLimitedAnalyzer_ZeroLimitPassesThrough(t *testing.T) {
	t.Parallel()

	inner := &countingAnalyzer{}
	if got := NewLimitedAnalyzer(inner, 0); got != adapter.ScriptAnalyzer(inner) {
		t.Fatal("zero limit should return the inner analyzer unchanged")
	}
}
