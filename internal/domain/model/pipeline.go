package model

// StageKey identifies one unit of work in the fixed production pipeline.
type StageKey string

const (
	StageScriptAnalysis StageKey = "script_analysis"
	StageVoiceover      StageKey = "voiceover"
	StageVisuals        StageKey = "visuals"
	StageMusic          StageKey = "music"
	StageSubtitles      StageKey = "subtitle_generation"
	StageThumbnail      StageKey = "thumbnail"
	StageSeo            StageKey = "seo"
	StageAssembly       StageKey = "assembly"
	StageUpload         StageKey = "upload"
)

// StageKeys is the canonical execution (and rendering) order.
var StageKeys = []StageKey{
	StageScriptAnalysis,
	StageVoiceover,
	StageVisuals,
	StageMusic,
	StageSubtitles,
	StageThumbnail,
	StageSeo,
	StageAssembly,
	StageUpload,
}

type StageStatus string

const (
	StageStatusIdle      StageStatus = "idle"
	StageStatusRunning   StageStatus = "running"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
)

// PipelineStage is one entry of the per-run stage report.
type PipelineStage struct {
	Key     StageKey    `json:"key"`
	Title   string      `json:"title"`
	Status  StageStatus `json:"status"`
	Summary string      `json:"summary,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type stageInfo struct {
	title   string
	summary string
}

var stageCatalog = map[StageKey]stageInfo{
	StageScriptAnalysis: {"Analyze script context", "Understand tone, topics, and hook to map the rest of the workflow."},
	StageVoiceover:      {"Synthesize AI voiceover", "Select a neural narrator and convert the script to studio audio."},
	StageVisuals:        {"Plan visual storyboard", "Match each beat with stock footage, b-roll, and motion graphics."},
	StageMusic:          {"Select background music", "Generate or source a soundtrack aligned to pacing and mood."},
	StageSubtitles:      {"Generate subtitles", "Auto-caption the voiceover with multilingual support."},
	StageThumbnail:      {"Craft thumbnail", "Design a high-CTR thumbnail prompt and render."},
	StageSeo:            {"Optimize SEO metadata", "Create a title, description, and tags ready for upload."},
	StageAssembly:       {"Assemble final video", "Timeline voiceover, visuals, captions, and audio bed."},
	StageUpload:         {"Upload to YouTube", "Publish immediately or schedule via the YouTube Data API."},
}

// StageTitle returns the display title for a key ("" for unknown keys).
func StageTitle(k StageKey) string { return stageCatalog[k].title }

// CatalogStages returns the static idle stage list shown before any run,
// with the descriptive summaries.
func CatalogStages() []PipelineStage {
	out := make([]PipelineStage, 0, len(StageKeys))
	for _, k := range StageKeys {
		info := stageCatalog[k]
		out = append(out, PipelineStage{Key: k, Title: info.title, Status: StageStatusIdle, Summary: info.summary})
	}
	return out
}

// NewRunStages returns the per-run stage list, all idle and without
// summaries; the orchestrator fills summaries as stages complete.
func NewRunStages() []PipelineStage {
	out := make([]PipelineStage, 0, len(StageKeys))
	for _, k := range StageKeys {
		out = append(out, PipelineStage{Key: k, Title: stageCatalog[k].title, Status: StageStatusIdle})
	}
	return out
}

// Assets holds the artifact URLs produced by a run. Fields are set once
// by their producing stage and never rewritten.
type Assets struct {
	VideoURL     string `json:"videoUrl,omitempty"`
	VoiceoverURL string `json:"voiceoverUrl,omitempty"`
	SubtitlesURL string `json:"subtitlesUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type SeoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// PipelineResponse is the snapshot handed to the caller after a run.
type PipelineResponse struct {
	Stages []PipelineStage `json:"stages"`
	Assets Assets          `json:"assets"`
	Seo    SeoMetadata     `json:"seo"`
	Upload *UploadResult   `json:"upload,omitempty"`
}

// Stage returns a pointer into the response's stage list, or nil.
func (r *PipelineResponse) Stage(key StageKey) *PipelineStage {
	for i := range r.Stages {
		if r.Stages[i].Key == key {
			return &r.Stages[i]
		}
	}
	return nil
}
