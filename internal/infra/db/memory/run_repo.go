package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/repository"
)

var _ repository.RunRepository = (*RunRepo)(nil)

// RunRepo is the default run store when no database is configured.
type RunRepo struct {
	mu   sync.RWMutex
	runs map[string]*model.PipelineRun
}

func NewRunRepo() *RunRepo {
	return &RunRepo{runs: make(map[string]*model.PipelineRun)}
}

func (r *RunRepo) Save(ctx context.Context, run *model.PipelineRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *run
	r.runs[run.ID] = &cp
	return nil
}

func (r *RunRepo) FindByID(ctx context.Context, id string) (*model.PipelineRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *run
	return &cp, nil
}

func (r *RunRepo) List(ctx context.Context, offset, limit int) ([]*model.PipelineRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := make([]*model.PipelineRun, 0, len(r.runs))
	for _, run := range r.runs {
		cp := *run
		all = append(all, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].StartedAt.After(all[j].StartedAt) })

	if offset >= len(all) {
		return []*model.PipelineRun{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *RunRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, run := range r.runs {
		if run.Status != model.RunStatusRunning && run.StartedAt.Before(cutoff) {
			delete(r.runs, id)
			n++
		}
	}
	return n, nil
}
