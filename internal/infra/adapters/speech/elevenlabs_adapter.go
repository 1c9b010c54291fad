package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/ports/adapter"

	"github.com/google/uuid"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.SpeechSynthesizer = (*ElevenLabsAdapter)(nil)

// ElevenLabsAdapter converts scripts to narration audio through the
// ElevenLabs text-to-speech REST API. The synthesized audio is written
// into the served media directory and exposed by URL.
type ElevenLabsAdapter struct {
	apiKey       string
	base         string
	defaultVoice string
	mediaDir     string
	baseURL      string
	client       *http.Client
}

func NewElevenLabsAdapter(apiKey, defaultVoice, mediaDir, baseURL string, timeout time.Duration) (*ElevenLabsAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: elevenlabs api key empty", domain.ErrMissingCredentials)
	}
	if defaultVoice == "" {
		defaultVoice = "21m00Tcm4TlvDq8ikWAM"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ElevenLabsAdapter{
		apiKey:       apiKey,
		base:         "https://api.elevenlabs.io/v1",
		defaultVoice: defaultVoice,
		mediaDir:     mediaDir,
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: timeout},
	}, nil
}

func (e *ElevenLabsAdapter) Synthesize(ctx context.Context, script, voiceProfile, language string) (*adapter.Voiceover, error) {
	voice := voiceProfile
	if voice == "" {
		voice = e.defaultVoice
	}

	reqBody := struct {
		Text          string `json:"text"`
		ModelID       string `json:"model_id"`
		VoiceSettings struct {
			Stability       float64 `json:"stability"`
			SimilarityBoost float64 `json:"similarity_boost"`
		} `json:"voice_settings"`
	}{Text: script, ModelID: "eleven_multilingual_v2"}
	reqBody.VoiceSettings.Stability = 0.5
	reqBody.VoiceSettings.SimilarityBoost = 0.75

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.base+"/text-to-speech/"+voice, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: elevenlabs http %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	if err := os.MkdirAll(e.mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	name := "voiceover_" + uuid.NewString() + ".mp3"
	f, err := os.Create(filepath.Join(e.mediaDir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return nil, fmt.Errorf("write voiceover: %w", err)
	}

	return &adapter.Voiceover{
		URL:         e.baseURL + "/media/" + name,
		Voice:       voice,
		DurationSec: estimateDuration(script),
	}, nil
}

// estimateDuration approximates narration length at ~150 words/min;
// the assembler measures the real duration with ffprobe.
func estimateDuration(script string) float64 {
	words := len(strings.Fields(script))
	return float64(words) / 150 * 60
}
