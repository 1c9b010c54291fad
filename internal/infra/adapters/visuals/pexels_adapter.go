package visuals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.VisualSearcher = (*PexelsAdapter)(nil)

// PexelsAdapter searches stock footage through the Pexels video API.
type PexelsAdapter struct {
	apiKey string
	base   string
	client *http.Client
}

func NewPexelsAdapter(apiKey string, timeout time.Duration) (*PexelsAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: pexels api key empty", domain.ErrMissingCredentials)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PexelsAdapter{
		apiKey: apiKey,
		base:   "https://api.pexels.com/videos",
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (p *PexelsAdapter) SearchClips(ctx context.Context, topics []string, count int) ([]adapter.StoryboardClip, error) {
	if count <= 0 {
		count = 6
	}
	query := strings.Join(topics, " ")
	if query == "" {
		query = "technology b-roll"
	}

	u := fmt.Sprintf("%s/search?query=%s&per_page=%d&orientation=landscape",
		p.base, url.QueryEscape(query), count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: pexels http %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	var payload struct {
		Videos []struct {
			Duration   float64 `json:"duration"`
			URL        string  `json:"url"`
			VideoFiles []struct {
				Link    string `json:"link"`
				Quality string `json:"quality"`
			} `json:"video_files"`
		} `json:"videos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed pexels response: %v", domain.ErrProviderFailure, err)
	}

	var clips []adapter.StoryboardClip
	for _, v := range payload.Videos {
		link := ""
		for _, f := range v.VideoFiles {
			if f.Quality == "hd" {
				link = f.Link
				break
			}
		}
		if link == "" && len(v.VideoFiles) > 0 {
			link = v.VideoFiles[0].Link
		}
		if link == "" {
			continue
		}
		clips = append(clips, adapter.StoryboardClip{
			URL:         link,
			Description: v.URL,
			DurationSec: v.Duration,
		})
	}
	return clips, nil
}
