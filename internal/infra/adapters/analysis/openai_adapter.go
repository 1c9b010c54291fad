package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pkoukk/tiktoken-go"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ScriptAnalyzer = (*OpenAIAnalyzer)(nil)

// OpenAIAnalyzer implements script analysis and SEO generation with the
// Chat Completions API. Responses are requested as strict JSON.
type OpenAIAnalyzer struct {
	client          openai.Client
	model           string
	maxPromptTokens int
}

func NewOpenAIAnalyzer(apiKey, model string, maxPromptTokens int) (*OpenAIAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key empty", domain.ErrMissingCredentials)
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if maxPromptTokens <= 0 {
		maxPromptTokens = 6000
	}
	return &OpenAIAnalyzer{
		client:          openai.NewClient(option.WithAPIKey(apiKey)),
		model:           model,
		maxPromptTokens: maxPromptTokens,
	}, nil
}

const analyzePrompt = `You are a YouTube production planner. Analyze the script and answer with JSON only:
{"tone": string, "hook": string, "topics": [string], "beats": [string], "summary": string}
"topics" are 3-6 search keywords for stock footage, "beats" the narrative beats in order,
"summary" one sentence about tone and structure.`

func (o *OpenAIAnalyzer) AnalyzeScript(ctx context.Context, script, language string) (*adapter.ScriptAnalysis, error) {
	out, err := o.completeJSON(ctx, analyzePrompt,
		fmt.Sprintf("Language: %s\nScript:\n%s", language, o.clamp(script)))
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

const seoPrompt = `You write YouTube SEO metadata. Answer with JSON only:
{"title": string, "description": string, "tags": [string]}
Title under 70 characters, description 2-3 sentences, 8-15 tags.`

func (o *OpenAIAnalyzer) GenerateSeo(ctx context.Context, projectName, script string, analysis *adapter.ScriptAnalysis) (*model.SeoMetadata, error) {
	user := fmt.Sprintf("Project: %s\nTone: %s\nTopics: %s\nScript:\n%s",
		projectName, analysis.Tone, strings.Join(analysis.Topics, ", "), o.clamp(script))
	out, err := o.completeJSON(ctx, seoPrompt, user)
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

func (o *OpenAIAnalyzer) completeJSON(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			return stripFences(c.Message.Content), nil
		}
	}
	return "", fmt.Errorf("%w: no choice content", domain.ErrProviderFailure)
}

// clamp trims the script to the prompt token budget so a pasted
// transcript cannot blow past context limits.
func (o *OpenAIAnalyzer) clamp(script string) string {
	enc, err := tiktoken.EncodingForModel(o.model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return script
		}
	}
	ids := enc.Encode(script, nil, nil)
	if len(ids) <= o.maxPromptTokens {
		return script
	}
	return enc.Decode(ids[:o.maxPromptTokens])
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
