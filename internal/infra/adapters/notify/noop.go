package notify

import (
	"context"

	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.RunNotifier = (*NoopNotifier)(nil)

// NoopNotifier logs finished runs instead of sending notifications.
type NoopNotifier struct {
	log *zerolog.Logger
}

func NewNoopNotifier(logger *zerolog.Logger) *NoopNotifier {
	l := logger.With().Str("component", "NoopNotifier").Logger()
	return &NoopNotifier{log: &l}
}

func (n *NoopNotifier) NotifyRunFinished(ctx context.Context, run *model.PipelineRun) error {
	n.log.Debug().
		Str("run_id", run.ID).
		Str("project", run.ProjectName).
		Str("status", string(run.Status)).
		Msg("run finished")
	return nil
}
