package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/repository"
	"ai-video-pipeline/internal/infra/metrics"
)

var _ repository.RunRepository = (*runCacheDecorator)(nil)

// runCacheDecorator serves FindByID from Redis. Only terminal runs are
// cached; a running run changes state and must always hit the store.
type runCacheDecorator struct {
	inner repository.RunRepository
	cache RedisClient
	ttl   time.Duration
}

func NewRunCacheDecorator(inner repository.RunRepository, cache RedisClient, ttl time.Duration) repository.RunRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &runCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func runKey(id string) string { return fmt.Sprintf("run:id:%s", id) }

func (d *runCacheDecorator) Save(ctx context.Context, run *model.PipelineRun) error {
	_ = d.cache.Del(ctx, runKey(run.ID))
	if err := d.inner.Save(ctx, run); err != nil {
		return err
	}
	if run.Status != model.RunStatusRunning {
		if b, err := json.Marshal(run); err == nil {
			_ = d.cache.Set(ctx, runKey(run.ID), b, d.ttl)
		}
	}
	return nil
}

func (d *runCacheDecorator) FindByID(ctx context.Context, id string) (*model.PipelineRun, error) {
	val, err := d.cache.Get(ctx, runKey(id))
	if err == nil {
		var run model.PipelineRun
		if json.Unmarshal([]byte(val), &run) == nil {
			metrics.IncCacheRequest("hit")
			return &run, nil
		}
	} else if err != redis.Nil {
		// Redis being down should never break reads; fall through to the store.
	}

	metrics.IncCacheRequest("miss")
	run, err := d.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.Status != model.RunStatusRunning {
		if b, mErr := json.Marshal(run); mErr == nil {
			_ = d.cache.Set(ctx, runKey(id), b, d.ttl)
		}
	}
	return run, nil
}

func (d *runCacheDecorator) List(ctx context.Context, offset, limit int) ([]*model.PipelineRun, error) {
	return d.inner.List(ctx, offset, limit)
}

// DeleteOlderThan delegates to the store. The store does not report
// which IDs it removed, so cached copies of pruned runs stay readable
// through FindByID until their TTL expires; the cache TTL is therefore
// the upper bound on how long a pruned run remains visible.
func (d *runCacheDecorator) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return d.inner.DeleteOlderThan(ctx, cutoff)
}
