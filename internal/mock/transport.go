package mock

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fhuszti/lsl-go/internal/transport"
)

// Transport implements the upload transport for tests. Responses are keyed by
// request path and copied into the caller's value through JSON.
type Transport struct {
	// stored values
	Responses map[string]any
	ETag      string
	Progress  []int

	// captured inputs
	Paths         []string
	Bodies        map[string]any
	UploadURL     string
	UploadedBytes []byte
	ContentType   string

	// errors
	RequestErrs map[string]error
	UploadErr   error

	// call flags
	UploadCalled bool
}

func (m *Transport) RequestJSON(ctx context.Context, path string, opts transport.RequestOptions, out any) error {
	m.Paths = append(m.Paths, path)
	if m.Bodies == nil {
		m.Bodies = map[string]any{}
	}
	m.Bodies[path] = opts.Body
	if err := m.RequestErrs[path]; err != nil {
		return err
	}
	resp, ok := m.Responses[path]
	if !ok || out == nil {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (m *Transport) UploadBinary(ctx context.Context, url string, body io.Reader, size int64, contentType string, onProgress transport.ProgressFunc) (transport.UploadResult, error) {
	m.UploadCalled = true
	m.UploadURL = url
	m.ContentType = contentType
	if body != nil {
		m.UploadedBytes, _ = io.ReadAll(body)
	}
	if onProgress != nil {
		for _, p := range m.Progress {
			onProgress(p)
		}
	}
	if m.UploadErr != nil {
		return transport.UploadResult{}, m.UploadErr
	}
	return transport.UploadResult{ETag: m.ETag}, nil
}
