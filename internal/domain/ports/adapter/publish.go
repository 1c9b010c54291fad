package adapter

import (
	"context"

	"ai-video-pipeline/internal/domain/model"
)

// PublishRequest carries the assembled artifacts to the video platform.
// A non-empty ScheduleAt asks the platform for a deferred publish.
type PublishRequest struct {
	VideoURL     string
	ThumbnailURL string
	Seo          *model.SeoMetadata
	Language     string
	ScheduleAt   string
}

// VideoPublisher is the port for the upload capability.
// Publish returns the destination watch URL.
type VideoPublisher interface {
	Publish(ctx context.Context, req PublishRequest) (string, error)
}
