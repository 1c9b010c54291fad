package assembly

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/ports/adapter"

	"github.com/google/uuid"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.VideoAssembler = (*FFmpegAssembler)(nil)

// FFmpegAssembler downloads the run's artifacts, concatenates the stock
// clips, and muxes the narration (plus the music bed when present)
// into a single mp4 under the served media directory.
type FFmpegAssembler struct {
	ffmpeg   string
	mediaDir string
	baseURL  string
	client   *http.Client
}

func NewFFmpegAssembler(ffmpegPath, mediaDir, baseURL string, timeout time.Duration) *FFmpegAssembler {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &FFmpegAssembler{
		ffmpeg:   ffmpegPath,
		mediaDir: mediaDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

func (a *FFmpegAssembler) Assemble(ctx context.Context, in adapter.AssemblyInput) (string, error) {
	if in.Voiceover == nil || len(in.Clips) == 0 {
		return "", fmt.Errorf("%w: assembly requires a voiceover and at least one clip", domain.ErrInvalidArgument)
	}

	work, err := os.MkdirTemp("", "assembly-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(work)

	audio, err := a.download(ctx, in.Voiceover.URL, filepath.Join(work, "voiceover.mp3"))
	if err != nil {
		return "", err
	}

	var clipFiles []string
	for i, clip := range in.Clips {
		f, err := a.download(ctx, clip.URL, filepath.Join(work, fmt.Sprintf("clip_%03d.mp4", i)))
		if err != nil {
			return "", err
		}
		clipFiles = append(clipFiles, f)
	}

	// ffmpeg concat demuxer list
	var lines []string
	for _, f := range clipFiles {
		lines = append(lines, fmt.Sprintf("file '%s'", f))
	}
	listFile := filepath.Join(work, "concat_list.txt")
	if err := os.WriteFile(listFile, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", err
	}

	reel := filepath.Join(work, "reel.mp4")
	if err := a.run(ctx, "-y",
		"-f", "concat", "-safe", "0", "-i", listFile,
		"-an", "-c:v", "libx264", "-preset", "veryfast", "-r", "30",
		reel,
	); err != nil {
		return "", fmt.Errorf("%w: concat clips: %v", domain.ErrProviderFailure, err)
	}

	if err := os.MkdirAll(a.mediaDir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := "video_" + uuid.NewString() + ".mp4"
	out := filepath.Join(a.mediaDir, name)

	args := []string{"-y", "-stream_loop", "-1", "-i", reel, "-i", audio}
	if in.Music != nil && in.Music.URL != "" {
		if bed, err := a.download(ctx, in.Music.URL, filepath.Join(work, "bed.mp3")); err == nil {
			args = append(args, "-i", bed,
				"-filter_complex", "[2:a]volume=0.15[bed];[1:a][bed]amix=inputs=2:duration=first[a]",
				"-map", "0:v", "-map", "[a]")
		} else {
			args = append(args, "-map", "0:v", "-map", "1:a")
		}
	} else {
		args = append(args, "-map", "0:v", "-map", "1:a")
	}
	args = append(args, "-c:v", "copy", "-c:a", "aac", "-shortest", out)

	if err := a.run(ctx, args...); err != nil {
		return "", fmt.Errorf("%w: mux narration: %v", domain.ErrProviderFailure, err)
	}

	return a.baseURL + "/media/" + name, nil
}

func (a *FFmpegAssembler) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %s", err, lastLine(stderr.String()))
	}
	return nil
}

func (a *FFmpegAssembler) download(ctx context.Context, url, dst string) (string, error) {
	// media dir artifacts are already local files
	if local := a.localPath(url); local != "" {
		return local, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", domain.ErrProviderFailure, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetch %s: http %d", domain.ErrProviderFailure, url, resp.StatusCode)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}
	return dst, nil
}

// localPath resolves a served media URL back to its file on disk.
func (a *FFmpegAssembler) localPath(url string) string {
	prefix := a.baseURL + "/media/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	name := filepath.Base(strings.TrimPrefix(url, prefix))
	p := filepath.Join(a.mediaDir, name)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
