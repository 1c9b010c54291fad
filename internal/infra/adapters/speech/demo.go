package speech

import (
	"context"

	"ai-video-pipeline/internal/domain/ports/adapter"
)

var _ adapter.SpeechSynthesizer = (*DemoSynthesizer)(nil)

// DemoSynthesizer returns a static narration artifact without calling
// a TTS provider.
type DemoSynthesizer struct{}

func NewDemoSynthesizer() *DemoSynthesizer { return &DemoSynthesizer{} }

func (d *DemoSynthesizer) Synthesize(ctx context.Context, script, voiceProfile, language string) (*adapter.Voiceover, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	voice := voiceProfile
	if voice == "" {
		voice = "demo-narrator"
	}
	return &adapter.Voiceover{
		URL:         "https://cdn.pipeline.local/demo/voiceover.mp3",
		Voice:       voice,
		DurationSec: estimateDuration(script),
	}, nil
}
