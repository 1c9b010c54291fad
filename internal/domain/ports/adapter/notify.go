package adapter

import (
	"context"

	"ai-video-pipeline/internal/domain/model"
)

// RunNotifier announces finished runs to an operator channel.
type RunNotifier interface {
	NotifyRunFinished(ctx context.Context, run *model.PipelineRun) error
}
