package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/fhuszti/lsl-go/internal/history"
)

func TestInfer(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want Status
	}{
		{0, StatusUploaded},
		{5 * time.Second, StatusUploaded},
		{11*time.Second + 900*time.Millisecond, StatusUploaded},
		{12 * time.Second, StatusTranscribing},
		{30 * time.Second, StatusTranscribing},
		{45 * time.Second, StatusAnalyzing},
		{60 * time.Second, StatusAnalyzing},
		{80 * time.Second, StatusCompleted},
		{100 * time.Second, StatusCompleted},
		{-time.Minute, StatusUploaded},
	}
	for _, tc := range cases {
		t.Run(tc.ago.String(), func(t *testing.T) {
			at := now.Add(-tc.ago).Format(time.RFC3339Nano)
			if got := Infer(at, now); got != tc.want {
				t.Errorf("Infer(now-%s) = %q; want %q", tc.ago, got, tc.want)
			}
		})
	}
}

func TestInfer_UnparseableIsUploaded(t *testing.T) {
	if got := Infer("yesterday", time.Now()); got != StatusUploaded {
		t.Errorf("Infer(invalid) = %q; want uploaded", got)
	}
}

func TestRankAndReached(t *testing.T) {
	for i, s := range Steps() {
		if s.Rank() != i+1 {
			t.Errorf("%s.Rank() = %d; want %d", s, s.Rank(), i+1)
		}
	}
	if StatusFailed.Rank() != -1 {
		t.Errorf("failed rank = %d; want -1", StatusFailed.Rank())
	}

	if !StatusAnalyzing.Reached(StatusTranscribing) || !StatusAnalyzing.Reached(StatusAnalyzing) {
		t.Error("analyzing should have reached transcribing and itself")
	}
	if StatusAnalyzing.Reached(StatusCompleted) {
		t.Error("analyzing should not have reached completed")
	}
	if StatusFailed.Reached(StatusUploaded) || StatusCompleted.Reached(StatusFailed) {
		t.Error("failed is not comparable with the stages")
	}
}

func TestSteps_ReturnsCopy(t *testing.T) {
	s := Steps()
	s[0] = StatusFailed
	if Steps()[0] != StatusUploaded {
		t.Error("Steps must not expose its backing array")
	}
}

func TestElapsedSource(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	var src Source = ElapsedSource{Now: func() time.Time { return now }}

	rec := history.Record{UploadedAt: now.Add(-30 * time.Second).Format(time.RFC3339)}
	got, err := src.Status(context.Background(), rec)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != StatusTranscribing {
		t.Errorf("Status = %q; want transcribing", got)
	}
}
