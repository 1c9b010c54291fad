package model

import (
	"encoding/json"
	"errors"
	"testing"

	"ai-video-pipeline/internal/domain"
)

func TestUploadResult_Constructors(t *testing.T) {
	t.Parallel()

	q := QueuedUpload()
	if q.Status != UploadStatusQueued || q.URL != "" || q.ScheduledFor != "" {
		t.Fatalf("queued result malformed: %+v", q)
	}

	up, err := UploadedTo("https://www.youtube.com/watch?v=abc123def45")
	if err != nil {
		t.Fatalf("UploadedTo returned error: %v", err)
	}
	if up.Status != UploadStatusUploaded || up.URL == "" || up.ScheduledFor != "" {
		t.Fatalf("uploaded result malformed: %+v", up)
	}

	if _, err := UploadedTo(""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty url, got %v", err)
	}

	sc, err := ScheduledUpload("2026-09-01T18:00")
	if err != nil {
		t.Fatalf("ScheduledUpload returned error: %v", err)
	}
	if sc.Status != UploadStatusScheduled || sc.ScheduledFor != "2026-09-01T18:00" || sc.URL != "" {
		t.Fatalf("scheduled result malformed: %+v", sc)
	}

	if _, err := ScheduledUpload(""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty timestamp, got %v", err)
	}
}

func TestUploadResult_UnmarshalRejectsBadVariants(t *testing.T) {
	t.Parallel()

	bad := []string{
		`{"status":"queued","url":"https://example.com/v"}`,
		`{"status":"queued","scheduledFor":"2026-09-01T18:00"}`,
		`{"status":"uploaded"}`,
		`{"status":"uploaded","url":"x","scheduledFor":"2026-09-01T18:00"}`,
		`{"status":"scheduled"}`,
		`{"status":"scheduled","url":"x","scheduledFor":"2026-09-01T18:00"}`,
		`{"status":"published","url":"x"}`,
	}
	for _, in := range bad {
		var u UploadResult
		if err := json.Unmarshal([]byte(in), &u); err == nil {
			t.Errorf("expected unmarshal of %s to fail", in)
		}
	}

	var u UploadResult
	if err := json.Unmarshal([]byte(`{"status":"scheduled","scheduledFor":"2026-09-01T18:00"}`), &u); err != nil {
		t.Fatalf("valid scheduled variant rejected: %v", err)
	}
	if u.ScheduledFor != "2026-09-01T18:00" {
		t.Fatalf("timestamp not echoed verbatim: %q", u.ScheduledFor)
	}
}

func TestUploadResult_JSONOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(QueuedUpload())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"status":"queued"}` {
		t.Fatalf("queued serialization leaked fields: %s", b)
	}
}
