package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

type cliTestEnv struct {
	dir      string
	requests atomic.Int32
}

func envelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"code": 0, "message": "successful", "data": data})
}

func setupCLITestEnv(t *testing.T, backend string) *cliTestEnv {
	t.Helper()

	env := &cliTestEnv{dir: t.TempDir()}
	mux := http.NewServeMux()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	mux.HandleFunc("POST /assets/upload-url", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, map[string]string{
			"object_key": "conversation/web_user/abc.wav",
			"upload_url": srv.URL + "/store/abc?sig=1",
			"asset_url":  "https://cdn/conversation/web_user/abc.wav",
		})
	})
	mux.HandleFunc("PUT /store/abc", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("ETag", `"xyz"`)
	})
	mux.HandleFunc("POST /assets/complete-upload", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, map[string]string{
			"object_key": "conversation/web_user/abc.wav",
			"asset_url":  "https://cdn/conversation/web_user/abc.wav",
			"status":     "acknowledged",
		})
	})
	mux.HandleFunc("GET /assets", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" || r.URL.Query().Get("category") != "conversation" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		envelope(w, map[string]any{"items": []map[string]any{{
			"object_key":    "conversation/web_user/abc.wav",
			"category":      "conversation",
			"entity_id":     "web_user",
			"filename":      "clip.wav",
			"file_size":     2048,
			"upload_status": 1,
			"created_at":    "2025-02-03T04:05:06Z",
			"asset_url":     "https://cdn/conversation/web_user/abc.wav",
		}}})
	})

	history := filepath.Join(env.dir, "history.json")
	if backend == "sqlite" {
		history = filepath.Join(env.dir, "history.db")
	}
	t.Setenv("LSL_API_BASE_URL", srv.URL)
	t.Setenv("LSL_HISTORY_BACKEND", backend)
	t.Setenv("LSL_HISTORY_PATH", history)
	t.Setenv("LSL_FFPROBE", filepath.Join(env.dir, "no-ffprobe"))
	return env
}

func (e *cliTestEnv) writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_UploadThenBrowse(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			env := setupCLITestEnv(t, backend)
			clip := env.writeFile(t, "clip.wav", 2048)

			out, err := runCLI(t, "upload", clip)
			if err != nil {
				t.Fatalf("upload: %v", err)
			}
			for _, want := range []string{"task_abc", "summary_abc", "conversation/web_user/abc.wav", "--:--"} {
				if !strings.Contains(out, want) {
					t.Errorf("upload output missing %q:\n%s", want, out)
				}
			}

			out, err = runCLI(t, "history")
			if err != nil {
				t.Fatalf("history: %v", err)
			}
			if !strings.Contains(out, "clip.wav") || !strings.Contains(out, "2.00 KB") {
				t.Errorf("history output:\n%s", out)
			}

			out, err = runCLI(t, "task", "task_abc")
			if err != nil {
				t.Fatalf("task: %v", err)
			}
			if !strings.Contains(out, "[>] uploaded") || !strings.Contains(out, "[ ] completed") {
				t.Errorf("task output:\n%s", out)
			}

			out, err = runCLI(t, "summary", "summary_abc")
			if err != nil {
				t.Fatalf("summary: %v", err)
			}
			if !strings.Contains(out, "clip.wav") || !strings.Contains(out, "speaker_b") {
				t.Errorf("summary output:\n%s", out)
			}

			if _, err := runCLI(t, "history", "clear"); err != nil {
				t.Fatalf("history clear: %v", err)
			}
			out, err = runCLI(t, "history")
			if err != nil {
				t.Fatalf("history: %v", err)
			}
			if !strings.Contains(out, "No uploads yet.") {
				t.Errorf("history after clear:\n%s", out)
			}
		})
	}
}

func TestCLI_UploadRejectsUnsupportedFileWithoutNetwork(t *testing.T) {
	env := setupCLITestEnv(t, "file")
	notes := env.writeFile(t, "notes.txt", 10)

	_, err := runCLI(t, "upload", notes)
	if err == nil || !strings.Contains(err.Error(), "Only mp3, wav, and m4a files are supported.") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := env.requests.Load(); n != 0 {
		t.Errorf("backend saw %d requests; want 0", n)
	}
}

func TestCLI_TaskUnknown(t *testing.T) {
	setupCLITestEnv(t, "file")

	if _, err := runCLI(t, "task", "task_missing"); err == nil || !strings.Contains(err.Error(), "task_missing") {
		t.Fatalf("expected unknown task error, got %v", err)
	}
}

func TestCLI_SummaryWithoutRecord(t *testing.T) {
	setupCLITestEnv(t, "file")

	out, err := runCLI(t, "summary", "summary_zzz")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "no local upload record") || !strings.Contains(out, "00:27") {
		t.Errorf("summary output:\n%s", out)
	}
}

func TestCLI_Assets(t *testing.T) {
	setupCLITestEnv(t, "file")

	out, err := runCLI(t, "assets", "--limit", "5", "--category", "conversation")
	if err != nil {
		t.Fatalf("assets: %v", err)
	}
	for _, want := range []string{"conversation/web_user/abc.wav", "clip.wav", "verified", "2.00 KB"} {
		if !strings.Contains(out, want) {
			t.Errorf("assets output missing %q:\n%s", want, out)
		}
	}
}
