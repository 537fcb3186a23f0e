package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fhuszti/lsl-go/internal/logger"
)

const (
	CodeSuccess    = 0
	MessageSuccess = "successful"
)

// Envelope wraps every JSON response of the asset API.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, Envelope{Code: status, Message: msg})
}

// RespondSuccess writes data inside a successful envelope.
func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, Envelope{Code: CodeSuccess, Message: MessageSuccess, Data: data})
}

// RespondSuccessRaw writes already encoded JSON as the data of a successful envelope.
func RespondSuccessRaw(w http.ResponseWriter, status int, data []byte) {
	RespondJSON(w, status, Envelope{Code: CodeSuccess, Message: MessageSuccess, Data: json.RawMessage(data)})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}
