package repository

import (
	"context"
	"time"

	"ai-video-pipeline/internal/domain/model"
)

// RunRepository stores pipeline run records.
type RunRepository interface {
	Save(ctx context.Context, run *model.PipelineRun) error
	FindByID(ctx context.Context, id string) (*model.PipelineRun, error)
	// List returns runs ordered by start time descending.
	List(ctx context.Context, offset, limit int) ([]*model.PipelineRun, error)
	// DeleteOlderThan prunes terminal runs started before cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
