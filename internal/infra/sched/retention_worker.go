package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ai-video-pipeline/internal/domain/ports/repository"
	"ai-video-pipeline/internal/infra/metrics"
)

// RetentionWorker periodically prunes finished runs older than the
// configured retention window.
type RetentionWorker struct {
	interval  time.Duration
	retention time.Duration
	runs      repository.RunRepository
	log       *zerolog.Logger
}

func NewRetentionWorker(interval, retention time.Duration, runs repository.RunRepository, logger *zerolog.Logger) *RetentionWorker {
	retLog := logger.With().Str("component", "RetentionWorker").Logger()
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &RetentionWorker{
		interval:  interval,
		retention: retention,
		runs:      runs,
		log:       &retLog,
	}
}

func (w *RetentionWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("retention", w.retention).Msg("Starting retention worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping retention worker")
			return ctx.Err()
		case <-ticker.C:
			cutoff := time.Now().Add(-w.retention)
			n, err := w.runs.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				w.log.Error().Err(err).Msg("retention worker error")
			}
			if n > 0 {
				metrics.AddRunsPruned(n)
				w.log.Info().Int64("count", n).Msg("old runs pruned")
			}
		}
	}
}
