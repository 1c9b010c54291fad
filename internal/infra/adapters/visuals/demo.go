package visuals

import (
	"context"
	"fmt"

	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.VisualSearcher = (*DemoSearcher)(nil)

// DemoSearcher fabricates a storyboard from the requested topics.
type DemoSearcher struct{}

func NewDemoSearcher() *DemoSearcher { return &DemoSearcher{} }

func (d *DemoSearcher) SearchClips(ctx context.Context, topics []string, count int) ([]adapter.StoryboardClip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = 6
	}
	clips := make([]adapter.StoryboardClip, 0, count)
	for i := 0; i < count; i++ {
		topic := "b-roll"
		if len(topics) > 0 {
			topic = topics[i%len(topics)]
		}
		clips = append(clips, adapter.StoryboardClip{
			URL:         fmt.Sprintf("https://cdn.pipeline.local/demo/clip_%02d.mp4", i+1),
			Description: topic,
			DurationSec: 8,
		})
	}
	return clips, nil
}
