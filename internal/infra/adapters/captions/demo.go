package captions

import (
	"context"

	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.Captioner = (*DemoCaptioner)(nil)

// DemoCaptioner points at a static caption track.
type DemoCaptioner struct{}

func NewDemoCaptioner() *DemoCaptioner { return &DemoCaptioner{} }

func (d *DemoCaptioner) GenerateCaptions(ctx context.Context, voiceoverURL, script, language string) (*adapter.CaptionTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &adapter.CaptionTrack{
		URL:      "https://cdn.pipeline.local/demo/captions.vtt",
		Format:   "vtt",
		Language: language,
	}, nil
}
