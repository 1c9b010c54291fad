package music

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
var _ adapter.MusicSelector = (*BeatovenAdapter)(nil)

// BeatovenAdapter sources a soundtrack from the Beatoven composition
// API, prompting with the analyzed mood and the narration length.
type BeatovenAdapter struct {
	apiKey string
	base   string
	client *http.Client
}

func NewBeatovenAdapter(apiKey string, timeout time.Duration) (*BeatovenAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: beatoven api key empty", domain.ErrMissingCredentials)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &BeatovenAdapter{
		apiKey: apiKey,
		base:   "https://public-api.beatoven.ai/api/v1",
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (b *BeatovenAdapter) SelectTrack(ctx context.Context, mood string, durationSec float64) (*adapter.MusicTrack, error) {
	if mood == "" {
		mood = "uplifting"
	}
	reqBody := struct {
		Prompt struct {
			Text string `json:"text"`
		} `json:"prompt"`
		DurationSec int    `json:"duration"`
		Format      string `json:"format"`
	}{DurationSec: int(durationSec), Format: "mp3"}
	reqBody.Prompt.Text = fmt.Sprintf("%s background score for a narrated video", mood)

	body, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.base+"/tracks/compose", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: beatoven http %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	var payload struct {
		Meta struct {
			TrackURL string `json:"track_url"`
			Title    string `json:"title"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed beatoven response: %v", domain.ErrProviderFailure, err)
	}
	if payload.Meta.TrackURL == "" {
		return nil, fmt.Errorf("%w: beatoven returned no track", domain.ErrProviderFailure)
	}

	title := payload.Meta.Title
	if title == "" {
		title = mood + " bed"
	}
	return &adapter.MusicTrack{
		URL:         payload.Meta.TrackURL,
		Title:       title,
		Mood:        mood,
		DurationSec: durationSec,
	}, nil
}
