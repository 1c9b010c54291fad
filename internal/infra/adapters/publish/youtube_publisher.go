package publish

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-video-pipeline/internal/config"
	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/ports/adapter"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.VideoPublisher = (*YouTubePublisher)(nil)

// YouTubePublisher uploads the assembled video through the YouTube Data
// API v3 using the OAuth refresh-token flow. A non-empty ScheduleAt
// uploads private with a publishAt timestamp, which is how the platform
// models scheduled publishing.
type YouTubePublisher struct {
	cfg      config.YouTubeConfig
	mediaDir string
	baseURL  string
	client   *http.Client
}

func NewYouTubePublisher(cfg config.YouTubeConfig, mediaDir, baseURL string, timeout time.Duration) (*YouTubePublisher, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("%w: youtube oauth credentials incomplete", domain.ErrMissingCredentials)
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &YouTubePublisher{
		cfg:      cfg,
		mediaDir: mediaDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (y *YouTubePublisher) Publish(ctx context.Context, req adapter.PublishRequest) (string, error) {
	conf := &oauth2.Config{
		ClientID:     y.cfg.ClientID,
		ClientSecret: y.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope},
	}
	token := &oauth2.Token{
		RefreshToken: y.cfg.RefreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}
	httpClient := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return "", fmt.Errorf("%w: youtube service: %v", domain.ErrProviderFailure, err)
	}

	path, cleanup, err := y.resolveVideo(ctx, req.VideoURL)
	if err != nil {
		return "", err
	}
	defer cleanup()

	snippet := &youtube.VideoSnippet{
		Title:                req.Seo.Title,
		Description:          req.Seo.Description,
		Tags:                 req.Seo.Tags,
		CategoryId:           y.cfg.CategoryID,
		DefaultLanguage:      req.Language,
		DefaultAudioLanguage: req.Language,
	}
	status := &youtube.VideoStatus{PrivacyStatus: y.cfg.Privacy}
	if req.ScheduleAt != "" {
		publishAt, err := parseSchedule(req.ScheduleAt)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
		// must be private to schedule
		status.PrivacyStatus = "private"
		status.PublishAt = publishAt.UTC().Format(time.RFC3339)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	call := svc.Videos.Insert([]string{"snippet", "status"}, &youtube.Video{Snippet: snippet, Status: status})
	call.Media(f)
	uploaded, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("%w: youtube upload: %v", domain.ErrProviderFailure, err)
	}

	return "https://www.youtube.com/watch?v=" + uploaded.Id, nil
}

// resolveVideo returns a local file path for the assembled video,
// downloading it when the assembler produced a remote URL.
func (y *YouTubePublisher) resolveVideo(ctx context.Context, url string) (string, func(), error) {
	prefix := y.baseURL + "/media/"
	if strings.HasPrefix(url, prefix) {
		p := filepath.Join(y.mediaDir, filepath.Base(strings.TrimPrefix(url, prefix)))
		if _, err := os.Stat(p); err == nil {
			return p, func() {}, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := y.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: fetch video: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("%w: fetch video: http %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "upload-*.mp4")
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	tmp.Close()
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// parseSchedule accepts RFC3339 and the datetime-local format the form
// submits (2025-01-01T10:00).
func parseSchedule(ts string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable schedule timestamp %q", ts)
}
