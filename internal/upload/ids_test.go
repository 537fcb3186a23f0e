package upload

import (
	"testing"
	"time"
)

func TestDeriveIDs(t *testing.T) {
	cases := []struct {
		key, task, summary string
	}{
		{"conversation/abc.wav", "task_abc", "summary_abc"},
		{"conversation/web_user/0f8fad5bd9cb469fa16570867728950e.m4a", "task_0f8fad5bd9cb469fa16570867728950e", "summary_0f8fad5bd9cb469fa16570867728950e"},
		{"a/b/clip.final.mp3", "task_clip", "summary_clip"},
		{"noext", "task_noext", "summary_noext"},
		{"dir.v2/file", "task_file", "summary_file"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			task, summary := DeriveIDs(tc.key)
			if task != tc.task || summary != tc.summary {
				t.Errorf("DeriveIDs(%q) = %q, %q; want %q, %q", tc.key, task, summary, tc.task, tc.summary)
			}
			task2, summary2 := DeriveIDs(tc.key)
			if task2 != task || summary2 != summary {
				t.Errorf("DeriveIDs is not deterministic for %q", tc.key)
			}
		})
	}
}

func TestNewRecord(t *testing.T) {
	d := 12.5
	now := time.Date(2025, 2, 3, 4, 5, 6, 789_000_000, time.FixedZone("X", 3600))
	res := &Result{Completion: Completion{ObjectKey: "conversation/web_user/xyz.mp3", AssetURL: "https://cdn/xyz.mp3", Status: StatusAcknowledged}}

	rec := NewRecord(res, File{Name: "meeting.mp3", Size: 2048}, &d, now)

	if rec.TaskID != "task_xyz" || rec.SummaryID != "summary_xyz" {
		t.Errorf("ids = %q/%q", rec.TaskID, rec.SummaryID)
	}
	if rec.FileName != "meeting.mp3" || rec.FileSize != 2048 {
		t.Errorf("file fields = %q/%d", rec.FileName, rec.FileSize)
	}
	if rec.DurationSec == nil || *rec.DurationSec != 12.5 {
		t.Errorf("DurationSec = %v", rec.DurationSec)
	}
	if rec.UploadedAt != "2025-02-03T03:05:06.789Z" {
		t.Errorf("UploadedAt = %q", rec.UploadedAt)
	}
}

func TestCompletionAccepted(t *testing.T) {
	for status, want := range map[string]bool{
		"acknowledged": true,
		"ok":           true,
		"rejected":     false,
		"FAILED":       false,
		"":             false,
	} {
		if got := (Completion{Status: status}).Accepted(); got != want {
			t.Errorf("Accepted(%q) = %v; want %v", status, got, want)
		}
	}
}
