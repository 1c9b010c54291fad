package model

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// PipelineRun is the stored record of one orchestration, kept for the
// run history surface. The response snapshot is immutable once the run
// reaches a terminal status.
type PipelineRun struct {
	ID          string            `json:"id"`
	ProjectName string            `json:"projectName"`
	Status      RunStatus         `json:"status"`
	Response    *PipelineResponse `json:"response,omitempty"`
	Error       string            `json:"error,omitempty"`
	StartedAt   time.Time         `json:"startedAt"`
	FinishedAt  time.Time         `json:"finishedAt,omitzero"`
	DurationMs  int64             `json:"durationMs,omitempty"`
}
