package adapter

import "context"

// Voiceover is the synthesized narration artifact.
type Voiceover struct {
	URL         string
	Voice       string
	DurationSec float64
}

// SpeechSynthesizer is the port for text-to-speech providers.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, script, voiceProfile, language string) (*Voiceover, error)
}

// StoryboardClip is one stock clip slotted into the storyboard.
type StoryboardClip struct {
	URL         string
	Description string
	DurationSec float64
}

// VisualSearcher is the port for stock footage search.
type VisualSearcher interface {
	SearchClips(ctx context.Context, topics []string, count int) ([]StoryboardClip, error)
}

// MusicTrack is the selected audio bed.
type MusicTrack struct {
	URL         string
	Title       string
	Mood        string
	DurationSec float64
}

// MusicSelector is the port for soundtrack selection or generation.
type MusicSelector interface {
	SelectTrack(ctx context.Context, mood string, durationSec float64) (*MusicTrack, error)
}

// CaptionTrack points at a generated subtitle file.
type CaptionTrack struct {
	URL      string
	Format   string // e.g. "vtt"
	Language string
}

// Captioner is the port for voiceover captioning.
type Captioner interface {
	GenerateCaptions(ctx context.Context, voiceoverURL, script, language string) (*CaptionTrack, error)
}

// ThumbnailRenderer is the port for thumbnail image generation.
// RenderThumbnail returns the rendered image URL.
type ThumbnailRenderer interface {
	RenderThumbnail(ctx context.Context, title, hook string) (string, error)
}

// AssemblyInput carries everything the final timeline needs.
type AssemblyInput struct {
	Project   string
	Voiceover *Voiceover
	Clips     []StoryboardClip
	Music     *MusicTrack
	Captions  *CaptionTrack
}

// VideoAssembler is the port for rendering the final video.
// Assemble returns the assembled video URL.
type VideoAssembler interface {
	Assemble(ctx context.Context, in AssemblyInput) (string, error)
}
