package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fhuszti/lsl-go/internal/history"
	"github.com/fhuszti/lsl-go/internal/mock"
	"github.com/fhuszti/lsl-go/internal/transport"
)

func wavInput(size int) Input {
	return Input{
		Request: Request{
			Category:    "conversation",
			EntityID:    "web_user",
			Filename:    "clip.wav",
			ContentType: "audio/wav",
		},
		File: File{Name: "clip.wav", Size: int64(size), Body: bytes.NewReader(make([]byte, size))},
	}
}

func okTransport() *mock.Transport {
	return &mock.Transport{
		Responses: map[string]any{
			PathUploadURL: Credential{
				ObjectKey: "conversation/abc.wav",
				UploadURL: "https://store/abc?sig=1",
				AssetURL:  "https://cdn/abc.wav",
			},
			PathCompleteUpload: Completion{
				ObjectKey: "conversation/abc.wav",
				AssetURL:  "https://cdn/abc.wav",
				Status:    "ok",
			},
		},
		ETag: "xyz",
	}
}

// envelope mimics the asset backend's response wrapper.
func envelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"code": 0, "message": "successful", "data": data})
}

func TestUpload_EndToEnd(t *testing.T) {
	var (
		mu       sync.Mutex
		stored   []byte
		complete map[string]any
	)
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("POST /assets/upload-url", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, map[string]string{
			"object_key": "conversation/abc.wav",
			"upload_url": srv.URL + "/store/abc?sig=...",
			"asset_url":  "https://cdn/abc.wav",
		})
	})
	mux.HandleFunc("PUT /store/abc", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		stored, _ = io.ReadAll(r.Body)
		mu.Unlock()
		w.Header().Set("ETag", `"xyz"`)
	})
	mux.HandleFunc("POST /assets/complete-upload", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&complete)
		mu.Unlock()
		envelope(w, map[string]string{
			"object_key": "conversation/abc.wav",
			"asset_url":  "https://cdn/abc.wav",
			"status":     "ok",
		})
	})

	var progress []int
	in := wavInput(204800)
	in.OnProgress = func(p int) { progress = append(progress, p) }

	orch := NewOrchestrator(transport.NewClient(srv.URL, srv.Client()))
	res, err := orch.Upload(context.Background(), in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if res.Completion.ObjectKey != res.Credential.ObjectKey {
		t.Errorf("completion key %q != credential key %q", res.Completion.ObjectKey, res.Credential.ObjectKey)
	}
	if len(stored) != 204800 {
		t.Errorf("stored %d bytes; want 204800", len(stored))
	}
	if complete["etag"] != "xyz" || complete["object_key"] != "conversation/abc.wav" {
		t.Errorf("complete-upload body = %v", complete)
	}
	if complete["file_size"] != float64(204800) || complete["filename"] != "clip.wav" {
		t.Errorf("complete-upload body = %v", complete)
	}
	if len(progress) == 0 || progress[len(progress)-1] != 100 {
		t.Errorf("progress = %v; want to end at 100", progress)
	}

	rec := NewRecord(res, in.File, nil, time.Now())
	if rec.TaskID != "task_abc" || rec.SummaryID != "summary_abc" {
		t.Errorf("ids = %q/%q; want task_abc/summary_abc", rec.TaskID, rec.SummaryID)
	}
	if rec.AssetURL != "https://cdn/abc.wav" || rec.FileSize != 204800 {
		t.Errorf("record = %+v", rec)
	}

	store := history.NewMemoryStore()
	if err := store.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.FindBySummaryID(context.Background(), "summary_abc"); err != nil {
		t.Errorf("FindBySummaryID: %v", err)
	}
}

func TestUpload_RejectsUnsupportedExtensionWithoutNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	in := wavInput(10)
	in.File.Name = "clip.txt"
	in.Request.Filename = "clip.txt"

	_, err := NewOrchestrator(transport.NewClient(srv.URL, srv.Client())).Upload(context.Background(), in)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if ve.Error() != "Only mp3, wav, and m4a files are supported." {
		t.Errorf("Error() = %q", ve.Error())
	}
	if hits.Load() != 0 {
		t.Errorf("expected no network call, got %d", hits.Load())
	}
}

func TestUpload_RejectsInvalidRequest(t *testing.T) {
	tr := okTransport()
	in := wavInput(10)
	in.Request.ContentType = "wav"

	_, err := NewOrchestrator(tr).Upload(context.Background(), in)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "content_type" {
		t.Fatalf("expected content_type validation error, got %v", err)
	}
	if len(tr.Paths) != 0 {
		t.Errorf("expected no requests, got %v", tr.Paths)
	}
}

func TestUpload_StepFailures(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name       string
		setup      func(*mock.Transport)
		check      func(t *testing.T, err error)
		wantPaths  int
		wantUpload bool
	}{
		{
			name:  "credential",
			setup: func(m *mock.Transport) { m.RequestErrs = map[string]error{PathUploadURL: &transport.TransportError{Status: 500, Body: "down"}} },
			check: func(t *testing.T, err error) {
				var ce *CredentialError
				if !errors.As(err, &ce) {
					t.Fatalf("expected *CredentialError, got %T", err)
				}
				var te *transport.TransportError
				if !errors.As(err, &te) || te.Status != 500 {
					t.Errorf("expected wrapped transport error, got %v", err)
				}
			},
			wantPaths: 1,
		},
		{
			name:  "empty credential",
			setup: func(m *mock.Transport) { delete(m.Responses, PathUploadURL) },
			check: func(t *testing.T, err error) {
				var ce *CredentialError
				if !errors.As(err, &ce) {
					t.Fatalf("expected *CredentialError, got %T", err)
				}
				if !errors.Is(err, ErrIncompleteCredential) {
					t.Errorf("expected ErrIncompleteCredential, got %v", err)
				}
			},
			wantPaths: 1,
		},
		{
			name:  "transfer",
			setup: func(m *mock.Transport) { m.UploadErr = &transport.UploadTransportError{Status: 403} },
			check: func(t *testing.T, err error) {
				var te *TransferError
				if !errors.As(err, &te) {
					t.Fatalf("expected *TransferError, got %T", err)
				}
				if te.ObjectKey != "conversation/abc.wav" {
					t.Errorf("ObjectKey = %q", te.ObjectKey)
				}
				if err.Error() != "Upload failed with status 403" {
					t.Errorf("Error() = %q", err.Error())
				}
			},
			wantPaths:  1,
			wantUpload: true,
		},
		{
			name:  "confirmation",
			setup: func(m *mock.Transport) { m.RequestErrs = map[string]error{PathCompleteUpload: boom} },
			check: func(t *testing.T, err error) {
				var ce *ConfirmationError
				if !errors.As(err, &ce) {
					t.Fatalf("expected *ConfirmationError, got %T", err)
				}
				if !errors.Is(err, boom) {
					t.Errorf("expected cause to be preserved")
				}
				if ce.AssetURL != "https://cdn/abc.wav" {
					t.Errorf("AssetURL = %q", ce.AssetURL)
				}
			},
			wantPaths:  2,
			wantUpload: true,
		},
		{
			name: "rejected completion",
			setup: func(m *mock.Transport) {
				m.Responses[PathCompleteUpload] = Completion{ObjectKey: "conversation/abc.wav", Status: StatusRejected}
			},
			check: func(t *testing.T, err error) {
				var ce *ConfirmationError
				if !errors.As(err, &ce) || ce.Status != StatusRejected {
					t.Fatalf("expected rejected *ConfirmationError, got %v", err)
				}
			},
			wantPaths:  2,
			wantUpload: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := okTransport()
			tc.setup(tr)

			res, err := NewOrchestrator(tr).Upload(context.Background(), wavInput(16))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if res != nil {
				t.Errorf("expected nil result, got %+v", res)
			}
			tc.check(t, err)
			if len(tr.Paths) != tc.wantPaths {
				t.Errorf("requests = %v; want %d", tr.Paths, tc.wantPaths)
			}
			if tr.UploadCalled != tc.wantUpload {
				t.Errorf("UploadCalled = %v; want %v", tr.UploadCalled, tc.wantUpload)
			}
		})
	}
}

func TestUpload_SendsCredentialRequestAndUploadsToIssuedURL(t *testing.T) {
	tr := okTransport()
	tr.Progress = []int{10, 60, 100}
	var got []int
	in := wavInput(32)
	in.OnProgress = func(p int) { got = append(got, p) }

	if _, err := NewOrchestrator(tr).Upload(context.Background(), in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req, ok := tr.Bodies[PathUploadURL].(Request); !ok || req != in.Request {
		t.Errorf("credential request body = %#v", tr.Bodies[PathUploadURL])
	}
	if tr.UploadURL != "https://store/abc?sig=1" || tr.ContentType != "audio/wav" {
		t.Errorf("upload went to %q as %q", tr.UploadURL, tr.ContentType)
	}
	if len(tr.UploadedBytes) != 32 {
		t.Errorf("uploaded %d bytes; want 32", len(tr.UploadedBytes))
	}
	if len(got) != 3 {
		t.Errorf("progress = %v", got)
	}
}

// blockingTransport parks UploadBinary until release is closed.
type blockingTransport struct {
	*mock.Transport
	entered chan struct{}
	release chan struct{}
}

func (b *blockingTransport) UploadBinary(ctx context.Context, url string, body io.Reader, size int64, ct string, p transport.ProgressFunc) (transport.UploadResult, error) {
	close(b.entered)
	<-b.release
	return b.Transport.UploadBinary(ctx, url, body, size, ct, p)
}

func TestUpload_RejectsConcurrentCall(t *testing.T) {
	bt := &blockingTransport{Transport: okTransport(), entered: make(chan struct{}), release: make(chan struct{})}
	orch := NewOrchestrator(bt)

	done := make(chan error, 1)
	go func() {
		_, err := orch.Upload(context.Background(), wavInput(8))
		done <- err
	}()
	<-bt.entered

	if _, err := orch.Upload(context.Background(), wavInput(8)); !errors.Is(err, ErrUploadInProgress) {
		t.Errorf("expected ErrUploadInProgress, got %v", err)
	}

	close(bt.release)
	if err := <-done; err != nil {
		t.Fatalf("first upload failed: %v", err)
	}

	// the flag is released once the first call returns
	bt2 := okTransport()
	orch.tr = bt2
	if _, err := orch.Upload(context.Background(), wavInput(8)); err != nil {
		t.Errorf("expected a later upload to succeed, got %v", err)
	}
}
