// Package pipeline reports where an uploaded recording is in the
// transcription and analysis pipeline.
package pipeline

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/history"
)

type Status string

const (
	StatusUploaded     Status = "uploaded"
	StatusTranscribing Status = "transcribing"
	StatusAnalyzing    Status = "analyzing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

const (
	transcribingAfter = 12 * time.Second
	analyzingAfter    = 45 * time.Second
	completedAfter    = 80 * time.Second
)

var steps = []Status{StatusUploaded, StatusTranscribing, StatusAnalyzing, StatusCompleted}

// Steps returns the pipeline stages in order. Failed is not a stage.
func Steps() []Status {
	return append([]Status(nil), steps...)
}

// Rank orders the stages from 1; failed and unknown values rank -1.
func (s Status) Rank() int {
	for i, step := range steps {
		if s == step {
			return i + 1
		}
	}
	return -1
}

// Reached reports whether step is done or in progress once the task is at s.
func (s Status) Reached(step Status) bool {
	r, sr := s.Rank(), step.Rank()
	return r > 0 && sr > 0 && r >= sr
}

func (s Status) String() string { return string(s) }

// Infer maps the time since upload onto a stage. It never yields failed; an
// unparseable uploadedAt reads as just uploaded.
func Infer(uploadedAt string, now time.Time) Status {
	t, err := time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return StatusUploaded
	}
	elapsed := now.Sub(t).Truncate(time.Second)
	switch {
	case elapsed < transcribingAfter:
		return StatusUploaded
	case elapsed < analyzingAfter:
		return StatusTranscribing
	case elapsed < completedAfter:
		return StatusAnalyzing
	default:
		return StatusCompleted
	}
}

// Source yields the current status of an uploaded recording.
type Source interface {
	Status(ctx context.Context, rec history.Record) (Status, error)
}

// ElapsedSource infers status from wall-clock time until the backend exposes
// a task status endpoint.
type ElapsedSource struct {
	Now func() time.Time
}

var _ Source = ElapsedSource{}

func (e ElapsedSource) Status(_ context.Context, rec history.Record) (Status, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return Infer(rec.UploadedAt, now()), nil
}
