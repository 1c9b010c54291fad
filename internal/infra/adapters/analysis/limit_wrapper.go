package analysis

import (
	"context"

	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.ScriptAnalyzer = (*limitedAnalyzer)(nil)

type limitedAnalyzer struct {
	inner adapter.ScriptAnalyzer
	sem   chan struct{}
}

// NewLimitedAnalyzer caps concurrent LLM calls across all runs.
func NewLimitedAnalyzer(inner adapter.ScriptAnalyzer, maxConcurrent int) adapter.ScriptAnalyzer {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedAnalyzer{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedAnalyzer) acquire(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *limitedAnalyzer) AnalyzeScript(ctx context.Context, script, language string) (*adapter.ScriptAnalysis, error) {
	if err := l.acquire(ctx); err != nil {
		return nil, err
	}
	defer func() { <-l.sem }()
	return l.inner.AnalyzeScript(ctx, script, language)
}

func (l *limitedAnalyzer) GenerateSeo(ctx context.Context, projectName, script string, analysis *adapter.ScriptAnalysis) (*model.SeoMetadata, error) {
	if err := l.acquire(ctx); err != nil {
		return nil, err
	}
	defer func() { <-l.sem }()
	return l.inner.GenerateSeo(ctx, projectName, script, analysis)
}
