package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"
	"ai-video-pipeline/internal/infra/db/memory"
	"ai-video-pipeline/internal/infra/worker"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testRequest() *model.PipelineRequest {
	return &model.PipelineRequest{
		Script:      "A narration script long enough to clear validation comfortably.",
		ProjectName: "Test project",
	}
}

func newTestUC(p Providers, notifier *fakeNotifier) (PipelineUseCase, *memory.RunRepo) {
	repo := memory.NewRunRepo()
	// keep the interface nil when no fake is supplied, so the
	// orchestrator's own nil guard is exercised
	var n adapter.RunNotifier
	if notifier != nil {
		n = notifier
	}
	uc := NewPipelineUseCase(p, repo, n, nil, 5*time.Second, 4, testLogger())
	return uc, repo
}

func TestPipelineUC_Run_AllStagesComplete(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUC(happyProviders(), &fakeNotifier{})
	resp, err := uc.Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(resp.Stages) != len(model.StageKeys) {
		t.Fatalf("expected %d stages, got %d", len(model.StageKeys), len(resp.Stages))
	}
	for i, st := range resp.Stages {
		if st.Key != model.StageKeys[i] {
			t.Errorf("stage %d out of order: %q", i, st.Key)
		}
		if st.Status != model.StageStatusCompleted {
			t.Errorf("stage %q not completed: %q", st.Key, st.Status)
		}
		if st.Summary == "" {
			t.Errorf("stage %q missing summary", st.Key)
		}
		if st.Error != "" {
			t.Errorf("stage %q carries error: %q", st.Key, st.Error)
		}
	}

	if resp.Assets.VideoURL == "" || resp.Assets.VoiceoverURL == "" ||
		resp.Assets.SubtitlesURL == "" || resp.Assets.ThumbnailURL == "" {
		t.Fatalf("assets incomplete: %+v", resp.Assets)
	}
	if resp.Seo.Title == "" || len(resp.Seo.Tags) == 0 {
		t.Fatalf("seo incomplete: %+v", resp.Seo)
	}

	// without auto-upload the result is queued
	if resp.Upload == nil || resp.Upload.Status != model.UploadStatusQueued {
		t.Fatalf("expected queued upload, got %+v", resp.Upload)
	}

	runs, err := repo.List(context.Background(), 0, 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one persisted run, got %d (%v)", len(runs), err)
	}
	if runs[0].Status != model.RunStatusCompleted {
		t.Fatalf("run not completed: %q", runs[0].Status)
	}
	if runs[0].FinishedAt.IsZero() {
		t.Fatal("finished run missing FinishedAt")
	}
}

func TestPipelineUC_Run_UploadVariants(t *testing.T) {
	t.Parallel()

	t.Run("uploaded", func(t *testing.T) {
		p := happyProviders()
		pub := &fakePublisher{}
		p.Publisher = pub
		uc, _ := newTestUC(p, nil)

		req := testRequest()
		req.AutoUploadEnabled = true
		resp, err := uc.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if resp.Upload == nil || resp.Upload.Status != model.UploadStatusUploaded {
			t.Fatalf("expected uploaded, got %+v", resp.Upload)
		}
		if resp.Upload.URL == "" || resp.Upload.ScheduledFor != "" {
			t.Fatalf("uploaded variant malformed: %+v", resp.Upload)
		}
		if len(pub.calls) != 1 || pub.calls[0].ScheduleAt != "" {
			t.Fatalf("publisher call malformed: %+v", pub.calls)
		}
	})

	t.Run("scheduled echoes timestamp verbatim", func(t *testing.T) {
		p := happyProviders()
		pub := &fakePublisher{}
		p.Publisher = pub
		uc, _ := newTestUC(p, nil)

		ts := "2026-09-01T18:00"
		req := testRequest()
		req.AutoUploadEnabled = true
		req.ScheduleAt = &ts
		resp, err := uc.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if resp.Upload == nil || resp.Upload.Status != model.UploadStatusScheduled {
			t.Fatalf("expected scheduled, got %+v", resp.Upload)
		}
		if resp.Upload.ScheduledFor != ts || resp.Upload.URL != "" {
			t.Fatalf("scheduled variant malformed: %+v", resp.Upload)
		}
		if len(pub.calls) != 1 || pub.calls[0].ScheduleAt != ts {
			t.Fatalf("publisher did not receive schedule: %+v", pub.calls)
		}
	})

	t.Run("schedule ignored without auto-upload", func(t *testing.T) {
		p := happyProviders()
		pub := &fakePublisher{}
		p.Publisher = pub
		uc, _ := newTestUC(p, nil)

		ts := "2026-09-01T18:00"
		req := testRequest()
		req.ScheduleAt = &ts
		resp, err := uc.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if resp.Upload == nil || resp.Upload.Status != model.UploadStatusQueued {
			t.Fatalf("expected queued, got %+v", resp.Upload)
		}
		if len(pub.calls) != 0 {
			t.Fatalf("publisher must not be called when auto-upload is off")
		}
	})
}

func TestPipelineUC_Run_FailFast(t *testing.T) {
	t.Parallel()

	p := happyProviders()
	p.Visuals = &fakeVisuals{err: errors.New("pexels down")}
	notifier := &fakeNotifier{}
	uc, repo := newTestUC(p, notifier)

	resp, err := uc.Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("stage failure must not surface as an internal error, got %v", err)
	}

	if st := resp.Stage(model.StageVisuals); st.Status != model.StageStatusFailed || st.Error == "" {
		t.Fatalf("visuals stage should be failed with a message: %+v", st)
	}
	for _, key := range []model.StageKey{model.StageScriptAnalysis, model.StageVoiceover} {
		if st := resp.Stage(key); st.Status != model.StageStatusCompleted {
			t.Errorf("stage %q before the failure should be completed: %q", key, st.Status)
		}
	}
	for _, key := range []model.StageKey{model.StageMusic, model.StageSubtitles, model.StageThumbnail, model.StageSeo, model.StageAssembly, model.StageUpload} {
		if st := resp.Stage(key); st.Status != model.StageStatusIdle {
			t.Errorf("stage %q after the failure should stay idle: %q", key, st.Status)
		}
	}
	if resp.Upload != nil {
		t.Fatal("failed run must not carry an upload result")
	}

	runs, _ := repo.List(context.Background(), 0, 10)
	if len(runs) != 1 || runs[0].Status != model.RunStatusFailed || runs[0].Error == "" {
		t.Fatalf("expected a failed persisted run, got %+v", runs)
	}
	if got := notifier.last(); got == nil || got.Status != model.RunStatusFailed {
		t.Fatalf("notifier should receive the failed run, got %+v", got)
	}
}

func TestPipelineUC_Run_EmptyStoryboardFails(t *testing.T) {
	t.Parallel()

	p := happyProviders()
	p.Visuals = &fakeVisuals{empty: true}
	uc, _ := newTestUC(p, nil)

	resp, err := uc.Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	st := resp.Stage(model.StageVisuals)
	if st.Status != model.StageStatusFailed {
		t.Fatalf("empty storyboard should fail the visuals stage: %+v", st)
	}
}

func TestPipelineUC_Run_StageTimeout(t *testing.T) {
	t.Parallel()

	p := happyProviders()
	p.Assembler = &fakeAssembler{block: true}
	repo := memory.NewRunRepo()
	uc := NewPipelineUseCase(p, repo, &fakeNotifier{}, nil, 50*time.Millisecond, 4, testLogger())

	resp, err := uc.Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	st := resp.Stage(model.StageAssembly)
	if st.Status != model.StageStatusFailed {
		t.Fatalf("blocked assembly should time out: %+v", st)
	}

	runs, _ := repo.List(context.Background(), 0, 10)
	if len(runs) != 1 || !strings.Contains(runs[0].Error, domain.ErrStageTimeout.Error()) {
		t.Fatalf("run error should mention the stage timeout: %+v", runs)
	}
}

func TestPipelineUC_SubmitAndGetRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(2, testLogger())
	pool.Start(ctx)
	defer pool.Stop()

	repo := memory.NewRunRepo()
	uc := NewPipelineUseCase(happyProviders(), repo, &fakeNotifier{}, pool, 5*time.Second, 4, testLogger())

	id, err := uc.Submit(testRequest())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if id == "" {
		t.Fatal("Submit returned empty run id")
	}

	// the run record must be visible immediately
	run, err := uc.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if run.ID != id {
		t.Fatalf("expected run %q, got %q", id, run.ID)
	}

	deadline := time.After(5 * time.Second)
	for run.Status == model.RunStatusRunning {
		select {
		case <-deadline:
			t.Fatal("run never finished")
		case <-time.After(20 * time.Millisecond):
		}
		run, err = uc.GetRun(ctx, id)
		if err != nil {
			t.Fatalf("GetRun returned error: %v", err)
		}
	}
	if run.Status != model.RunStatusCompleted {
		t.Fatalf("expected completed run, got %q (%s)", run.Status, run.Error)
	}
	if run.Response == nil || len(run.Response.Stages) != len(model.StageKeys) {
		t.Fatalf("finished run missing response: %+v", run.Response)
	}
}

func TestPipelineUC_SubmitRejectionLeavesNoRunningRecord(t *testing.T) {
	t.Parallel()

	// pool is never started, so its queue (cap workers*4) fills up and
	// a later submission is rejected after its record was saved
	pool := worker.NewPool(1, testLogger())
	repo := memory.NewRunRepo()
	uc := NewPipelineUseCase(happyProviders(), repo, &fakeNotifier{}, pool, 5*time.Second, 4, testLogger())

	var accepted, rejected int
	for i := 0; i < 8; i++ {
		if _, err := uc.Submit(testRequest()); err != nil {
			if !errors.Is(err, domain.ErrQueueFull) {
				t.Fatalf("expected ErrQueueFull, got %v", err)
			}
			rejected++
		} else {
			accepted++
		}
	}
	if rejected == 0 {
		t.Fatal("queue never saturated")
	}

	runs, err := repo.List(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != accepted+rejected {
		t.Fatalf("expected %d records, got %d", accepted+rejected, len(runs))
	}

	var running, failed int
	for _, run := range runs {
		switch run.Status {
		case model.RunStatusRunning:
			running++
		case model.RunStatusFailed:
			failed++
			if !strings.Contains(run.Error, domain.ErrQueueFull.Error()) {
				t.Errorf("rejected run should carry the queue error, got %q", run.Error)
			}
			if run.FinishedAt.IsZero() {
				t.Error("rejected run must be terminal so retention can prune it")
			}
		default:
			t.Errorf("unexpected status %q", run.Status)
		}
	}
	if running != accepted {
		t.Fatalf("expected %d running records for accepted submissions, got %d", accepted, running)
	}
	if failed != rejected {
		t.Fatalf("expected %d failed records for rejected submissions, got %d", rejected, failed)
	}
}

func TestPipelineUC_SubmitWithoutPool(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUC(happyProviders(), nil)
	if _, err := uc.Submit(testRequest()); !errors.Is(err, domain.ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull without a pool, got %v", err)
	}
}

func TestStageCapability_CoversEveryStage(t *testing.T) {
	t.Parallel()

	for _, key := range model.StageKeys {
		if stageCapability[key] == "" {
			t.Errorf("stage %q has no capability label", key)
		}
	}
}

func TestPipelineUC_GetRun_NotFound(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUC(happyProviders(), nil)
	if _, err := uc.GetRun(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
