package assembly

import (
	"context"

	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.VideoAssembler = (*DemoAssembler)(nil)

// DemoAssembler skips rendering and returns a static deliverable.
type DemoAssembler struct{}

func NewDemoAssembler() *DemoAssembler { return &DemoAssembler{} }

func (d *DemoAssembler) Assemble(ctx context.Context, in adapter.AssemblyInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "https://cdn.pipeline.local/demo/final_video.mp4", nil
}
