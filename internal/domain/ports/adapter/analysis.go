package adapter

import (
	"context"

	"ai-video-pipeline/internal/domain/model"
)

// ScriptAnalysis is the structured reading of a raw script that the
// downstream stages key off.
type ScriptAnalysis struct {
	Tone    string   `json:"tone"`
	Hook    string   `json:"hook"`
	Topics  []string `json:"topics"`
	Beats   []string `json:"beats"`
	Summary string   `json:"summary"`
}

// ScriptAnalyzer is the port for the LLM-backed stages: script context
// analysis and SEO metadata generation.
type ScriptAnalyzer interface {
	AnalyzeScript(ctx context.Context, script, language string) (*ScriptAnalysis, error)
	GenerateSeo(ctx context.Context, projectName, script string, analysis *ScriptAnalysis) (*model.SeoMetadata, error)
}
