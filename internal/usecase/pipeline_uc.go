package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"
	"ai-video-pipeline/internal/domain/ports/repository"
	"ai-video-pipeline/internal/infra/logging"
	"ai-video-pipeline/internal/infra/metrics"
	"ai-video-pipeline/internal/infra/worker"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Providers bundles the stage adapters the orchestrator drives. Every
// field must be non-nil; demo implementations stand in when a provider
// has no credentials.
type Providers struct {
	Analyzer  adapter.ScriptAnalyzer
	Speech    adapter.SpeechSynthesizer
	Visuals   adapter.VisualSearcher
	Music     adapter.MusicSelector
	Captions  adapter.Captioner
	Thumbnail adapter.ThumbnailRenderer
	Assembler adapter.VideoAssembler
	Publisher adapter.VideoPublisher
}

// PipelineUseCase sequences the fixed stage list and owns run records.
type PipelineUseCase interface {
	// Run executes the pipeline synchronously. A stage failure is
	// reported inside the response (fail-fast: later stages stay idle);
	// the returned error is reserved for unexpected internal failures.
	Run(ctx context.Context, req *model.PipelineRequest) (*model.PipelineResponse, error)
	// Submit enqueues an asynchronous run and returns its ID.
	Submit(req *model.PipelineRequest) (string, error)
	GetRun(ctx context.Context, id string) (*model.PipelineRun, error)
	ListRuns(ctx context.Context, offset, limit int) ([]*model.PipelineRun, error)
}

type pipelineUC struct {
	providers    Providers
	runs         repository.RunRepository
	notifier     adapter.RunNotifier
	pool         *worker.Pool
	stageTimeout time.Duration
	clipCount    int
	log          *zerolog.Logger
}

func NewPipelineUseCase(
	providers Providers,
	runs repository.RunRepository,
	notifier adapter.RunNotifier,
	pool *worker.Pool,
	stageTimeout time.Duration,
	clipCount int,
	logger *zerolog.Logger,
) PipelineUseCase {
	l := logger.With().Str("component", "PipelineUC").Logger()
	if stageTimeout <= 0 {
		stageTimeout = 45 * time.Second
	}
	if clipCount <= 0 {
		clipCount = 6
	}
	return &pipelineUC{
		providers:    providers,
		runs:         runs,
		notifier:     notifier,
		pool:         pool,
		stageTimeout: stageTimeout,
		clipCount:    clipCount,
		log:          &l,
	}
}

func (uc *pipelineUC) Run(ctx context.Context, req *model.PipelineRequest) (*model.PipelineResponse, error) {
	return uc.run(ctx, ulid.Make().String(), req)
}

func (uc *pipelineUC) Submit(req *model.PipelineRequest) (string, error) {
	if uc.pool == nil {
		return "", fmt.Errorf("%w: no worker pool", domain.ErrQueueFull)
	}
	id := ulid.Make().String()
	started := time.Now().UTC()
	run := &model.PipelineRun{
		ID:          id,
		ProjectName: req.ProjectName,
		Status:      model.RunStatusRunning,
		StartedAt:   started,
	}
	if err := uc.runs.Save(context.Background(), run); err != nil {
		return "", err
	}
	if err := uc.pool.Submit(func(ctx context.Context) error {
		_, err := uc.run(ctx, id, req)
		return err
	}); err != nil {
		// The record was saved before the enqueue; leaving it running
		// would strand a phantom run that retention never prunes.
		rejected := fmt.Errorf("%w: %v", domain.ErrQueueFull, err)
		run.Status = model.RunStatusFailed
		run.Error = rejected.Error()
		run.FinishedAt = time.Now().UTC()
		run.DurationMs = run.FinishedAt.Sub(started).Milliseconds()
		if saveErr := uc.runs.Save(context.Background(), run); saveErr != nil {
			uc.log.Error().Err(saveErr).Str("run_id", id).Msg("persist rejected run")
		}
		metrics.IncRun(string(model.RunStatusFailed))
		return "", rejected
	}
	return id, nil
}

func (uc *pipelineUC) GetRun(ctx context.Context, id string) (*model.PipelineRun, error) {
	return uc.runs.FindByID(ctx, id)
}

func (uc *pipelineUC) ListRuns(ctx context.Context, offset, limit int) ([]*model.PipelineRun, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.runs.List(ctx, offset, limit)
}

// stageDef binds a stage key to its execution closure. The closure
// returns a human-readable summary on success.
type stageDef struct {
	key model.StageKey
	run func(ctx context.Context) (string, error)
}

// stageCapability maps stage keys to the provider capability labels
// reported at boot, so failure counters line up with the mode gauge.
var stageCapability = map[model.StageKey]string{
	model.StageScriptAnalysis: "analysis",
	model.StageVoiceover:      "speech",
	model.StageVisuals:        "visuals",
	model.StageMusic:          "music",
	model.StageSubtitles:      "captions",
	model.StageThumbnail:      "thumbnail",
	model.StageSeo:            "analysis",
	model.StageAssembly:       "assembly",
	model.StageUpload:         "publish",
}

func (uc *pipelineUC) run(ctx context.Context, id string, req *model.PipelineRequest) (*model.PipelineResponse, error) {
	ctx = logging.WithRunID(ctx, id)
	ctx = logging.WithProject(ctx, req.ProjectName)
	log := logging.With(ctx, uc.log)
	defer logging.TraceDuration(log, "PipelineUC.run")()

	started := time.Now().UTC()
	run := &model.PipelineRun{
		ID:          id,
		ProjectName: req.ProjectName,
		Status:      model.RunStatusRunning,
		StartedAt:   started,
	}
	if err := uc.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	resp := &model.PipelineResponse{Stages: model.NewRunStages()}

	// Intermediate artifacts threaded between stages.
	var (
		analysis  *adapter.ScriptAnalysis
		voiceover *adapter.Voiceover
		clips     []adapter.StoryboardClip
		track     *adapter.MusicTrack
		captions  *adapter.CaptionTrack
	)

	language := req.TargetLanguage
	if language == "" {
		language = "en-US"
	}

	stages := []stageDef{
		{model.StageScriptAnalysis, func(ctx context.Context) (string, error) {
			a, err := uc.providers.Analyzer.AnalyzeScript(ctx, req.Script, language)
			if err != nil {
				return "", err
			}
			analysis = a
			if a.Summary != "" {
				return a.Summary, nil
			}
			return fmt.Sprintf("Tone %q with %d topics mapped.", a.Tone, len(a.Topics)), nil
		}},
		{model.StageVoiceover, func(ctx context.Context) (string, error) {
			vo, err := uc.providers.Speech.Synthesize(ctx, req.Script, req.VoiceProfile, language)
			if err != nil {
				return "", err
			}
			voiceover = vo
			resp.Assets.VoiceoverURL = vo.URL
			return fmt.Sprintf("Narrated %.0fs of studio audio with voice %s.", vo.DurationSec, vo.Voice), nil
		}},
		{model.StageVisuals, func(ctx context.Context) (string, error) {
			cs, err := uc.providers.Visuals.SearchClips(ctx, analysis.Topics, uc.clipCount)
			if err != nil {
				return "", err
			}
			if len(cs) == 0 {
				return "", fmt.Errorf("%w: no stock footage matched the storyboard", domain.ErrProviderFailure)
			}
			clips = cs
			return fmt.Sprintf("Storyboard covered with %d stock clips.", len(cs)), nil
		}},
		{model.StageMusic, func(ctx context.Context) (string, error) {
			t, err := uc.providers.Music.SelectTrack(ctx, analysis.Tone, voiceover.DurationSec)
			if err != nil {
				return "", err
			}
			track = t
			return fmt.Sprintf("Soundtrack %q matched to a %s mood.", t.Title, t.Mood), nil
		}},
		{model.StageSubtitles, func(ctx context.Context) (string, error) {
			ct, err := uc.providers.Captions.GenerateCaptions(ctx, voiceover.URL, req.Script, language)
			if err != nil {
				return "", err
			}
			captions = ct
			resp.Assets.SubtitlesURL = ct.URL
			return fmt.Sprintf("Captions generated in %s (%s).", ct.Language, strings.ToUpper(ct.Format)), nil
		}},
		{model.StageThumbnail, func(ctx context.Context) (string, error) {
			url, err := uc.providers.Thumbnail.RenderThumbnail(ctx, req.ProjectName, analysis.Hook)
			if err != nil {
				return "", err
			}
			resp.Assets.ThumbnailURL = url
			return "High-CTR thumbnail rendered.", nil
		}},
		{model.StageSeo, func(ctx context.Context) (string, error) {
			seo, err := uc.providers.Analyzer.GenerateSeo(ctx, req.ProjectName, req.Script, analysis)
			if err != nil {
				return "", err
			}
			resp.Seo = *seo
			return fmt.Sprintf("Title, description, and %d tags ready for upload.", len(seo.Tags)), nil
		}},
		{model.StageAssembly, func(ctx context.Context) (string, error) {
			url, err := uc.providers.Assembler.Assemble(ctx, adapter.AssemblyInput{
				Project:   req.ProjectName,
				Voiceover: voiceover,
				Clips:     clips,
				Music:     track,
				Captions:  captions,
			})
			if err != nil {
				return "", err
			}
			resp.Assets.VideoURL = url
			return "Final timeline rendered with voiceover, visuals, captions, and audio bed.", nil
		}},
		{model.StageUpload, func(ctx context.Context) (string, error) {
			return uc.runUpload(ctx, req, resp, language)
		}},
	}

	stageErr := uc.executeStages(ctx, resp, stages, log)

	run.FinishedAt = time.Now().UTC()
	run.DurationMs = run.FinishedAt.Sub(started).Milliseconds()
	run.Response = resp
	if stageErr != nil {
		run.Status = model.RunStatusFailed
		run.Error = stageErr.Error()
	} else {
		run.Status = model.RunStatusCompleted
	}
	metrics.IncRun(string(run.Status))
	if err := uc.runs.Save(ctx, run); err != nil {
		log.Error().Err(err).Msg("persist finished run")
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyRunFinished(ctx, run); err != nil {
			log.Warn().Err(err).Msg("run notification failed")
		}
	}

	return resp, nil
}

// executeStages walks the stage list in order. Fail-fast: the first
// failure is recorded on its stage and every later stage stays idle.
func (uc *pipelineUC) executeStages(ctx context.Context, resp *model.PipelineResponse, stages []stageDef, log *zerolog.Logger) error {
	for _, def := range stages {
		stage := resp.Stage(def.key)
		stage.Status = model.StageStatusRunning
		log.Info().Str("stage", string(def.key)).Msg("stage started")

		stageCtx, cancel := context.WithTimeout(ctx, uc.stageTimeout)
		start := time.Now()
		summary, err := def.run(stageCtx)
		cancel()
		latency := time.Since(start).Milliseconds()
		metrics.ObserveStage(string(def.key), latency, err == nil)

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w after %s", domain.ErrStageTimeout, uc.stageTimeout)
			}
			metrics.IncProviderError(stageCapability[def.key])
			stage.Status = model.StageStatusFailed
			stage.Error = err.Error()
			log.Error().Err(err).Str("stage", string(def.key)).Int64("latency_ms", latency).Msg("stage failed")
			return fmt.Errorf("stage %s: %w", def.key, err)
		}

		stage.Status = model.StageStatusCompleted
		stage.Summary = summary
		log.Info().Str("stage", string(def.key)).Int64("latency_ms", latency).Msg("stage completed")
	}
	return nil
}

// runUpload applies the publishing decision: queued when auto-upload is
// off, scheduled when a timestamp is supplied, uploaded otherwise.
func (uc *pipelineUC) runUpload(ctx context.Context, req *model.PipelineRequest, resp *model.PipelineResponse, language string) (string, error) {
	if !req.AutoUploadEnabled {
		resp.Upload = model.QueuedUpload()
		metrics.IncUpload(string(model.UploadStatusQueued))
		return "Artifacts finalized. Upload queued for manual publishing.", nil
	}

	pubReq := adapter.PublishRequest{
		VideoURL:     resp.Assets.VideoURL,
		ThumbnailURL: resp.Assets.ThumbnailURL,
		Seo:          &resp.Seo,
		Language:     language,
		ScheduleAt:   req.Schedule(),
	}

	if pubReq.ScheduleAt != "" {
		if _, err := uc.providers.Publisher.Publish(ctx, pubReq); err != nil {
			return "", err
		}
		up, err := model.ScheduledUpload(pubReq.ScheduleAt)
		if err != nil {
			return "", err
		}
		resp.Upload = up
		metrics.IncUpload(string(model.UploadStatusScheduled))
		return fmt.Sprintf("Publish scheduled for %s.", pubReq.ScheduleAt), nil
	}

	url, err := uc.providers.Publisher.Publish(ctx, pubReq)
	if err != nil {
		return "", err
	}
	up, err := model.UploadedTo(url)
	if err != nil {
		return "", err
	}
	resp.Upload = up
	metrics.IncUpload(string(model.UploadStatusUploaded))
	return fmt.Sprintf("Published to %s.", url), nil
}
