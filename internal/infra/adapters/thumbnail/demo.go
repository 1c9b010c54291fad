package thumbnail

import (
	"context"

	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.ThumbnailRenderer = (*DemoRenderer)(nil)

// DemoRenderer returns a static thumbnail URL.
type DemoRenderer struct{}

func NewDemoRenderer() *DemoRenderer { return &DemoRenderer{} }

func (d *DemoRenderer) RenderThumbnail(ctx context.Context, title, hook string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "https://cdn.pipeline.local/demo/thumbnail.png", nil
}
