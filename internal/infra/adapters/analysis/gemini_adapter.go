package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.ScriptAnalyzer = (*GeminiAnalyzer)(nil)

// GeminiAnalyzer is the Gemini-backed alternative to the OpenAI
// analyzer, using the official SDK.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key empty", domain.ErrMissingCredentials)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAnalyzer{client: c, model: model}, nil
}

func (g *GeminiAnalyzer) AnalyzeScript(ctx context.Context, script, language string) (*adapter.ScriptAnalysis, error) {
	prompt := analyzePrompt + fmt.Sprintf("\n\nLanguage: %s\nScript:\n%s", language, script)
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var a adapter.ScriptAnalysis
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		return nil, fmt.Errorf("%w: malformed analysis response: %v", domain.ErrProviderFailure, err)
	}
	if len(a.Topics) == 0 {
		return nil, fmt.Errorf("%w: analysis returned no topics", domain.ErrProviderFailure)
	}
	return &a, nil
}

func (g *GeminiAnalyzer) GenerateSeo(ctx context.Context, projectName, script string, analysis *adapter.ScriptAnalysis) (*model.SeoMetadata, error) {
	prompt := seoPrompt + fmt.Sprintf("\n\nProject: %s\nTone: %s\nTopics: %s\nScript:\n%s",
		projectName, analysis.Tone, strings.Join(analysis.Topics, ", "), script)
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var seo model.SeoMetadata
	if err := json.Unmarshal([]byte(out), &seo); err != nil {
		return nil, fmt.Errorf("%w: malformed seo response: %v", domain.ErrProviderFailure, err)
	}
	if seo.Title == "" || len(seo.Tags) == 0 {
		return nil, fmt.Errorf("%w: seo response missing title or tags", domain.ErrProviderFailure)
	}
	return &seo, nil
}

func (g *GeminiAnalyzer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty gemini response", domain.ErrProviderFailure)
	}
	return stripFences(text), nil
}
