package mock

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/port"
)

// Storage implements port.Storage for tests.
type Storage struct {
	// stored values
	ProviderName string
	UploadURLOut string
	StatInfoOut  port.FileInfo

	// captured inputs
	ObjectKey   string
	ContentType string
	TTL         time.Duration

	// errors
	GenerateUploadLinkErr error
	StatErr               error

	// call flags
	GenerateUploadLinkCalled bool
	StatCalled               bool
}

func (m *Storage) Name() string {
	if m.ProviderName == "" {
		return "fake"
	}
	return m.ProviderName
}

func (m *Storage) GeneratePresignedUploadURL(ctx context.Context, fileKey, contentType string, expiry time.Duration) (string, error) {
	m.GenerateUploadLinkCalled = true
	m.ObjectKey = fileKey
	m.ContentType = contentType
	m.TTL = expiry
	if m.GenerateUploadLinkErr != nil {
		return "", m.GenerateUploadLinkErr
	}
	if m.UploadURLOut != "" {
		return m.UploadURLOut, nil
	}
	return "https://example.com/upload", nil
}

func (m *Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	m.ObjectKey = fileKey
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}
