package analysis

import (
	"context"
	"strings"

	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.ScriptAnalyzer = (*DemoAnalyzer)(nil)

// DemoAnalyzer produces deterministic placeholder analysis so the
// pipeline works with no LLM credentials configured.
type DemoAnalyzer struct{}

func NewDemoAnalyzer() *DemoAnalyzer { return &DemoAnalyzer{} }

func (d *DemoAnalyzer) AnalyzeScript(ctx context.Context, script, language string) (*adapter.ScriptAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sentences := splitSentences(script)
	hook := "Turn a raw script into a finished video."
	if len(sentences) > 0 {
		hook = sentences[0]
	}
	return &adapter.ScriptAnalysis{
		Tone:    "confident",
		Hook:    hook,
		Topics:  keywords(script, 5),
		Beats:   sentences,
		Summary: "Demo analysis: tone, topics, and hook extracted without an LLM call.",
	}, nil
}

func (d *DemoAnalyzer) GenerateSeo(ctx context.Context, projectName, script string, analysis *adapter.ScriptAnalysis) (*model.SeoMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	desc := script
	if len(desc) > 160 {
		desc = desc[:157] + "..."
	}
	tags := append([]string{"automation", "ai video", "tutorial"}, analysis.Topics...)
	return &model.SeoMetadata{
		Title:       projectName + " | AI Video Automation",
		Description: desc,
		Tags:        tags,
	}, nil
}

// keywords picks the longest distinct words as stand-in topics.
func keywords(script string, n int) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(script)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) < 6 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == n {
			break
		}
	}
	if len(out) == 0 {
		out = []string{"automation"}
	}
	return out
}

func splitSentences(script string) []string {
	var out []string
	for _, s := range strings.FieldsFunc(script, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
