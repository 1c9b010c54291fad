package sched

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/infra/db/memory"
)

func TestRetentionWorker_PrunesOldRuns(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := memory.NewRunRepo()
	now := time.Now().UTC()
	_ = repo.Save(ctx, &model.PipelineRun{ID: "old", Status: model.RunStatusCompleted, StartedAt: now.Add(-2 * time.Hour)})
	_ = repo.Save(ctx, &model.PipelineRun{ID: "fresh", Status: model.RunStatusCompleted, StartedAt: now})

	logger := zerolog.Nop()
	w := NewRetentionWorker(10*time.Millisecond, time.Hour, repo, &logger)
	go func() { _ = w.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		if _, err := repo.FindByID(ctx, "old"); errors.Is(err, domain.ErrNotFound) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("old run never pruned")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if _, err := repo.FindByID(ctx, "fresh"); err != nil {
		t.Fatalf("fresh run must survive: %v", err)
	}
}

func TestRetentionWorker_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	logger := zerolog.Nop()
	w := NewRetentionWorker(time.Hour, time.Hour, memory.NewRunRepo(), &logger)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
