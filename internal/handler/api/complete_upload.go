package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
)

type CompleteUploadRequest struct {
	ObjectKey   string  `json:"object_key" validate:"required,max=1024"`
	Category    *string `json:"category" validate:"omitempty,max=64"`
	EntityID    *string `json:"entity_id" validate:"omitempty,max=128"`
	Filename    *string `json:"filename" validate:"omitempty,max=255"`
	ContentType *string `json:"content_type" validate:"omitempty,max=128"`
	FileSize    *int64  `json:"file_size" validate:"omitempty,gte=0"`
	ETag        *string `json:"etag" validate:"omitempty,max=128"`
}

func CompleteUploadHandler(svc port.UploadCompleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompleteUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if rejectInvalid(w, r, req) {
			return
		}

		out, err := svc.CompleteUpload(r.Context(), port.CompleteUploadInput(req))
		if err != nil {
			if asset.IsInvalidCompletion(err) {
				WriteError(w, http.StatusBadRequest, err.Error(), nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not complete upload", err)
			return
		}

		RespondSuccess(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Upload of %q acknowledged", out.ObjectKey)
	}
}
