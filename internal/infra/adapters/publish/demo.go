package publish

import (
	"context"
	"strings"

	"ai-video-pipeline/internal/domain/ports/adapter"

	"github.com/google/uuid"
)

var _ adapter.VideoPublisher = (*DemoPublisher)(nil)

// DemoPublisher fabricates a watch URL without touching the platform.
type DemoPublisher struct{}

func NewDemoPublisher() *DemoPublisher { return &DemoPublisher{} }

func (d *DemoPublisher) Publish(ctx context.Context, req adapter.PublishRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:11]
	return "https://www.youtube.com/watch?v=" + id, nil
}
