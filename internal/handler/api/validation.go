package api

import (
	"net/http"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/validation"
)

// rejectInvalid validates req and writes the field errors when it fails.
// It reports whether a response was written.
func rejectInvalid(w http.ResponseWriter, r *http.Request, req any) bool {
	errs := validation.ValidateStruct(req)
	if errs == nil {
		return false
	}

	fields := validation.ErrorsToMap(errs)
	RespondJSON(w, http.StatusBadRequest, Envelope{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Data:    fields,
	})
	logger.Warnf(r.Context(), "❌  Validation failed: %v", fields)
	return true
}
