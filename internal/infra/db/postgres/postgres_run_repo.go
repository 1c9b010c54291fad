package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/domain/ports/repository"
)

var _ repository.RunRepository = (*runRepo)(nil)

type runRepo struct {
	pool *pgxpool.Pool
}

func NewRunRepo(pool *pgxpool.Pool) *runRepo {
	return &runRepo{pool: pool}
}

// EnsureSchema creates the pipeline_runs table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
  id           TEXT PRIMARY KEY,
  project_name TEXT NOT NULL,
  status       TEXT NOT NULL,
  response     JSONB,
  error        TEXT NOT NULL DEFAULT '',
  started_at   TIMESTAMPTZ NOT NULL,
  finished_at  TIMESTAMPTZ,
  duration_ms  BIGINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_pipeline_runs_started_at ON pipeline_runs (started_at DESC);`
	_, err := pool.Exec(ctx, q)
	return err
}

func (r *runRepo) Save(ctx context.Context, run *model.PipelineRun) error {
	var response []byte
	if run.Response != nil {
		b, err := json.Marshal(run.Response)
		if err != nil {
			return err
		}
		response = b
	}

	var finished *time.Time
	if !run.FinishedAt.IsZero() {
		finished = &run.FinishedAt
	}

	const q = `
INSERT INTO pipeline_runs (id, project_name, status, response, error, started_at, finished_at, duration_ms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  status = EXCLUDED.status,
  response = EXCLUDED.response,
  error = EXCLUDED.error,
  finished_at = EXCLUDED.finished_at,
  duration_ms = EXCLUDED.duration_ms;`

	_, err := r.pool.Exec(ctx, q,
		run.ID, run.ProjectName, string(run.Status), response, run.Error, run.StartedAt, finished, run.DurationMs)
	return err
}

func (r *runRepo) FindByID(ctx context.Context, id string) (*model.PipelineRun, error) {
	const q = `
SELECT id, project_name, status, response, error, started_at, finished_at, duration_ms
FROM pipeline_runs
WHERE id = $1;`
	run, err := scanRun(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

func (r *runRepo) List(ctx context.Context, offset, limit int) ([]*model.PipelineRun, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, project_name, status, response, error, started_at, finished_at, duration_ms
FROM pipeline_runs
ORDER BY started_at DESC
OFFSET $1 LIMIT $2;`
	rows, err := r.pool.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*model.PipelineRun, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *runRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM pipeline_runs WHERE status <> 'running' AND started_at < $1;`
	tag, err := r.pool.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanRun(row pgx.Row) (*model.PipelineRun, error) {
	var (
		run      model.PipelineRun
		status   string
		response []byte
		finished *time.Time
	)
	if err := row.Scan(&run.ID, &run.ProjectName, &status, &response, &run.Error,
		&run.StartedAt, &finished, &run.DurationMs); err != nil {
		return nil, err
	}
	run.Status = model.RunStatus(status)
	if len(response) > 0 {
		var resp model.PipelineResponse
		if err := json.Unmarshal(response, &resp); err != nil {
			return nil, err
		}
		run.Response = &resp
	}
	if finished != nil {
		run.FinishedAt = *finished
	}
	return &run, nil
}
