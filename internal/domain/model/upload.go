package model

import (
	"encoding/json"
	"fmt"

	"ai-video-pipeline/internal/domain"
)

type UploadStatus string

const (
	UploadStatusQueued    UploadStatus = "queued"
	UploadStatusUploaded  UploadStatus = "uploaded"
	UploadStatusScheduled UploadStatus = "scheduled"
)

// UploadResult is a tagged variant over queued | uploaded(url) |
// scheduled(timestamp). Build values through the constructors so the
// field combinations stay valid; UnmarshalJSON re-checks them.
type UploadResult struct {
	Status       UploadStatus `json:"status"`
	URL          string       `json:"url,omitempty"`
	ScheduledFor string       `json:"scheduledFor,omitempty"`
}

// QueuedUpload marks artifacts finalized but not published.
func QueuedUpload() *UploadResult {
	return &UploadResult{Status: UploadStatusQueued}
}

// UploadedTo records an immediate publish to the given destination.
func UploadedTo(url string) (*UploadResult, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: uploaded result requires a url", domain.ErrInvalidArgument)
	}
	return &UploadResult{Status: UploadStatusUploaded, URL: url}, nil
}

// ScheduledUpload records a deferred publish; the timestamp is echoed
// back exactly as supplied by the caller.
func ScheduledUpload(ts string) (*UploadResult, error) {
	if ts == "" {
		return nil, fmt.Errorf("%w: scheduled result requires a timestamp", domain.ErrInvalidArgument)
	}
	return &UploadResult{Status: UploadStatusScheduled, ScheduledFor: ts}, nil
}

func (u *UploadResult) Validate() error {
	switch u.Status {
	case UploadStatusQueued:
		if u.URL != "" || u.ScheduledFor != "" {
			return fmt.Errorf("%w: queued result carries no url or timestamp", domain.ErrInvalidArgument)
		}
	case UploadStatusUploaded:
		if u.URL == "" || u.ScheduledFor != "" {
			return fmt.Errorf("%w: uploaded result carries exactly a url", domain.ErrInvalidArgument)
		}
	case UploadStatusScheduled:
		if u.ScheduledFor == "" || u.URL != "" {
			return fmt.Errorf("%w: scheduled result carries exactly a timestamp", domain.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unknown upload status %q", domain.ErrInvalidArgument, u.Status)
	}
	return nil
}

func (u *UploadResult) UnmarshalJSON(b []byte) error {
	type raw UploadResult
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	out := UploadResult(r)
	if err := out.Validate(); err != nil {
		return err
	}
	*u = out
	return nil
}
