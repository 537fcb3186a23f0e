package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
)

type UploadURLRequest struct {
	Category    string `json:"category" validate:"required,max=64,excludesall=/"`
	EntityID    string `json:"entity_id" validate:"required,max=128,excludesall=/"`
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,max=128,mimetype"`
}

// UploadURLHandler issues a presigned upload URL. The fields are read from the
// JSON body, or from the query string when the body is empty.
func UploadURLHandler(svc port.UploadURLIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UploadURLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if !errors.Is(err, io.EOF) {
				WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
				return
			}
			q := r.URL.Query()
			req = UploadURLRequest{
				Category:    q.Get("category"),
				EntityID:    q.Get("entity_id"),
				Filename:    q.Get("filename"),
				ContentType: q.Get("content_type"),
			}
		}

		if rejectInvalid(w, r, req) {
			return
		}

		out, err := svc.IssueUploadURL(r.Context(), port.IssueUploadURLInput(req))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not generate upload url", err)
			return
		}

		RespondSuccess(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully issued upload url for %q", out.ObjectKey)
	}
}
