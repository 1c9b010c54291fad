package usecase

import (
	"context"
	"sync"

	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"
)

// ---- provider fakes ----

type fakeAnalyzer struct {
	analyzeErr error
	seoErr     error
	calls      int
}

func (f *fakeAnalyzer) AnalyzeScript(ctx context.Context, script, language string) (*adapter.ScriptAnalysis, error) {
	f.calls++
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &adapter.ScriptAnalysis{
		Tone:   "energetic",
		Hook:   "three habits that change your morning",
		Topics: []string{"productivity", "habits"},
		Beats:  []string{"hook", "habit one", "habit two", "habit three"},
	}, nil
}

func (f *fakeAnalyzer) GenerateSeo(ctx context.Context, projectName, script string, analysis *adapter.ScriptAnalysis) (*model.SeoMetadata, error) {
	if f.seoErr != nil {
		return nil, f.seoErr
	}
	return &model.SeoMetadata{
		Title:       projectName + " | Shorts",
		Description: "Generated description.",
		Tags:        []string{"productivity", "habits", "shorts"},
	}, nil
}

type fakeSpeech struct{ err error }

func (f *fakeSpeech) Synthesize(ctx context.Context, script, voiceProfile, language string) (*adapter.Voiceover, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &adapter.Voiceover{URL: "https://media.local/voiceover.mp3", Voice: "test-voice", DurationSec: 42}, nil
}

type fakeVisuals struct {
	err   error
	empty bool
}

func (f *fakeVisuals) SearchClips(ctx context.Context, topics []string, count int) ([]adapter.StoryboardClip, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return nil, nil
	}
	clips := make([]adapter.StoryboardClip, count)
	for i := range clips {
		clips[i] = adapter.StoryboardClip{URL: "https://media.local/clip.mp4", DurationSec: 8}
	}
	return clips, nil
}

type fakeMusic struct{ err error }

func (f *fakeMusic) SelectTrack(ctx context.Context, mood string, durationSec float64) (*adapter.MusicTrack, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &adapter.MusicTrack{URL: "https://media.local/bed.mp3", Title: "Test Bed", Mood: mood, DurationSec: durationSec}, nil
}

type fakeCaptions struct{ err error }

func (f *fakeCaptions) GenerateCaptions(ctx context.Context, voiceoverURL, script, language string) (*adapter.CaptionTrack, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &adapter.CaptionTrack{URL: "https://media.local/captions.vtt", Format: "vtt", Language: language}, nil
}

type fakeThumbnail struct{ err error }

func (f *fakeThumbnail) RenderThumbnail(ctx context.Context, title, hook string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://media.local/thumbnail.png", nil
}

type fakeAssembler struct {
	err   error
	block bool // hold until ctx cancellation to exercise the stage timeout
}

func (f *fakeAssembler) Assemble(ctx context.Context, in adapter.AssemblyInput) (string, error) {
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return "https://media.local/final.mp4", nil
}

type fakePublisher struct {
	err   error
	calls []adapter.PublishRequest
}

func (f *fakePublisher) Publish(ctx context.Context, req adapter.PublishRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return "https://www.youtube.com/watch?v=abc123def45", nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	runs []*model.PipelineRun
}

func (f *fakeNotifier) NotifyRunFinished(ctx context.Context, run *model.PipelineRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeNotifier) last() *model.PipelineRun {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.runs) == 0 {
		return nil
	}
	return f.runs[len(f.runs)-1]
}

func happyProviders() Providers {
	return Providers{
		Analyzer:  &fakeAnalyzer{},
		Speech:    &fakeSpeech{},
		Visuals:   &fakeVisuals{},
		Music:     &fakeMusic{},
		Captions:  &fakeCaptions{},
		Thumbnail: &fakeThumbnail{},
		Assembler: &fakeAssembler{},
		Publisher: &fakePublisher{},
	}
}
