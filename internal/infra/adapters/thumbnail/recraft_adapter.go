package thumbnail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ThumbnailRenderer = (*RecraftAdapter)(nil)

// RecraftAdapter renders a thumbnail through the Recraft image
// generation API.
type RecraftAdapter struct {
	apiKey string
	base   string
	client *http.Client
}

func NewRecraftAdapter(apiKey string, timeout time.Duration) (*RecraftAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: recraft api key empty", domain.ErrMissingCredentials)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RecraftAdapter{
		apiKey: apiKey,
		base:   "https://external.api.recraft.ai/v1",
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (r *RecraftAdapter) RenderThumbnail(ctx context.Context, title, hook string) (string, error) {
	prompt := fmt.Sprintf(
		"YouTube thumbnail for %q. Bold readable composition, high contrast, no small text. Theme: %s",
		title, hook)

	reqBody := struct {
		Prompt string `json:"prompt"`
		Style  string `json:"style"`
		Size   string `json:"size"`
	}{Prompt: prompt, Style: "digital_illustration", Size: "1280x720"}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/images/generations", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: recraft http %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	var payload struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: malformed recraft response: %v", domain.ErrProviderFailure, err)
	}
	if len(payload.Data) == 0 || payload.Data[0].URL == "" {
		return "", fmt.Errorf("%w: recraft returned no image", domain.ErrProviderFailure)
	}
	return payload.Data[0].URL, nil
}
