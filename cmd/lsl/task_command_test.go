package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fhuszti/lsl-go/internal/history"
	"github.com/fhuszti/lsl-go/internal/pipeline"
)

type fixedSource struct {
	status pipeline.Status
	err    error
}

func (f fixedSource) Status(context.Context, history.Record) (pipeline.Status, error) {
	return f.status, f.err
}

func runTask(t *testing.T, src pipeline.Source, taskID string) (string, error) {
	t.Helper()
	store := history.NewMemoryStore()
	if err := store.Save(context.Background(), history.Record{
		TaskID:     "task_abc",
		SummaryID:  "summary_abc",
		FileName:   "clip.wav",
		FileSize:   2048,
		ObjectKey:  "conversation/web_user/abc.wav",
		UploadedAt: "2025-02-03T04:05:06Z",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cmd := newTaskCommand(&commandContext{store: store, status: src})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{taskID})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTaskCommand_UsesConfiguredStatusSource(t *testing.T) {
	out, err := runTask(t, fixedSource{status: pipeline.StatusTranscribing}, "task_abc")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "status transcribing") {
		t.Errorf("output missing status:\n%s", out)
	}
	if !strings.Contains(out, "[>] transcribing") || !strings.Contains(out, "[x] uploaded") {
		t.Errorf("unexpected timeline:\n%s", out)
	}
	if strings.Contains(out, "summary ready") {
		t.Errorf("summary hint shown before completion:\n%s", out)
	}
}

func TestTaskCommand_StatusSourceError(t *testing.T) {
	boom := errors.New("status down")
	if _, err := runTask(t, fixedSource{err: boom}, "task_abc"); !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func TestCommandContext_DefaultStatusSource(t *testing.T) {
	if _, ok := (&commandContext{}).statusSource().(pipeline.ElapsedSource); !ok {
		t.Error("expected ElapsedSource by default")
	}
}
