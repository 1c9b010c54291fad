package music

import (
	"context"

	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.MusicSelector = (*DemoSelector)(nil)

// DemoSelector returns a fixed royalty-free bed.
type DemoSelector struct{}

func NewDemoSelector() *DemoSelector { return &DemoSelector{} }

func (d *DemoSelector) SelectTrack(ctx context.Context, mood string, durationSec float64) (*adapter.MusicTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mood == "" {
		mood = "uplifting"
	}
	return &adapter.MusicTrack{
		URL:         "https://cdn.pipeline.local/demo/soundtrack.mp3",
		Title:       "Demo Bed",
		Mood:        mood,
		DurationSec: durationSec,
	}, nil
}
