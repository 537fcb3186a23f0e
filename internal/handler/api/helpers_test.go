package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

type testEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope decode: %v (body=%q)", err, rec.Body.String())
	}
	return env
}

func decodeErrorMap(t *testing.T, env testEnvelope) map[string]string {
	t.Helper()
	var errs map[string]string
	if err := json.Unmarshal(env.Data, &errs); err != nil {
		t.Fatalf("error map decode: %v (data=%q)", err, string(env.Data))
	}
	return errs
}
