package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/lsl-go/internal/mock"
	"github.com/fhuszti/lsl-go/internal/port"
)

func TestUploadURLHandler(t *testing.T) {
	okOut := port.IssueUploadURLOutput{
		ObjectKey: "conversation/web_user/abc.wav",
		UploadURL: "https://store/abc?sig=1",
		AssetURL:  "https://cdn/conversation/web_user/abc.wav",
	}

	tests := []struct {
		name         string
		target       string
		body         string
		svcErr       error
		wantStatus   int
		wantCalled   bool
		wantErrorMap map[string]string
		wantMessage  string
	}{
		{
			name:       "happy path",
			target:     "/assets/upload-url",
			body:       `{"category":"conversation","entity_id":"web_user","filename":"clip.wav","content_type":"audio/wav"}`,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "query string fallback",
			target:     "/assets/upload-url?category=conversation&entity_id=web_user&filename=clip.wav&content_type=audio%2Fwav",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "invalid JSON",
			target:      "/assets/upload-url",
			body:        `{"category":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request",
		},
		{
			name:         "missing fields",
			target:       "/assets/upload-url",
			body:         `{"category":"conversation"}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"entity_id": "required", "filename": "required", "content_type": "required"},
		},
		{
			name:         "slash in path segment",
			target:       "/assets/upload-url",
			body:         `{"category":"a/b","entity_id":"web_user","filename":"clip.wav","content_type":"audio/wav"}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"category": "excludesall"},
		},
		{
			name:         "bad content type and long filename",
			target:       "/assets/upload-url",
			body:         fmt.Sprintf(`{"category":"c","entity_id":"e","filename":"%s","content_type":"wav"}`, strings.Repeat("a", 256)),
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"filename": "max", "content_type": "mimetype"},
		},
		{
			name:        "service error",
			target:      "/assets/upload-url",
			body:        `{"category":"conversation","entity_id":"web_user","filename":"clip.wav","content_type":"audio/wav"}`,
			svcErr:      errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCalled:  true,
			wantMessage: "Could not generate upload url",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.UploadURLIssuer{Out: okOut, Err: tc.svcErr}
			req := httptest.NewRequest(http.MethodPost, tc.target, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			UploadURLHandler(svc)(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body=%q)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q; want application/json", ct)
			}
			if svc.Called != tc.wantCalled {
				t.Errorf("service called = %v; want %v", svc.Called, tc.wantCalled)
			}

			env := decodeEnvelope(t, rec)
			switch {
			case tc.wantStatus == http.StatusOK:
				if env.Code != CodeSuccess || env.Message != MessageSuccess {
					t.Errorf("envelope = %d/%q", env.Code, env.Message)
				}
				var got port.IssueUploadURLOutput
				if err := json.Unmarshal(env.Data, &got); err != nil {
					t.Fatalf("data decode: %v", err)
				}
				if got != okOut {
					t.Errorf("data = %+v; want %+v", got, okOut)
				}
				want := port.IssueUploadURLInput{Category: "conversation", EntityID: "web_user", Filename: "clip.wav", ContentType: "audio/wav"}
				if svc.In != want {
					t.Errorf("service input = %+v; want %+v", svc.In, want)
				}

			case tc.wantErrorMap != nil:
				if env.Code != http.StatusBadRequest {
					t.Errorf("code = %d; want 400", env.Code)
				}
				errs := decodeErrorMap(t, env)
				for k, want := range tc.wantErrorMap {
					if got, ok := errs[k]; !ok {
						t.Errorf("missing key %q in error response: %v", k, errs)
					} else if got != want {
						t.Errorf("errs[%q] = %q; want %q", k, got, want)
					}
				}

			default:
				if env.Code != tc.wantStatus || env.Message != tc.wantMessage {
					t.Errorf("envelope = %d/%q; want %d/%q", env.Code, env.Message, tc.wantStatus, tc.wantMessage)
				}
				if string(env.Data) != "null" {
					t.Errorf("data = %s; want null", env.Data)
				}
			}
		})
	}
}
