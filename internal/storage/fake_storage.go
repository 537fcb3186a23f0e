package storage

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
)

const fakeUploadEndpoint = "http://fake-storage/upload"

// FakeStorage issues deterministic URLs pointing nowhere and holds no objects.
type FakeStorage struct{}

// compile-time check: *FakeStorage must satisfy port.Storage
var _ port.Storage = (*FakeStorage)(nil)

func NewFakeStorage() *FakeStorage { return &FakeStorage{} }

func (s *FakeStorage) Name() string { return config.StorageProviderFake }

func (s *FakeStorage) GeneratePresignedUploadURL(_ context.Context, fileKey, contentType string, expiry time.Duration) (string, error) {
	q := "object_key=" + url.QueryEscape(fileKey) +
		"&content_type=" + url.QueryEscape(contentType) +
		"&expires=" + strconv.Itoa(int(expiry.Seconds()))
	return fakeUploadEndpoint + "?" + q, nil
}

func (s *FakeStorage) StatFile(context.Context, string) (port.FileInfo, error) {
	return port.FileInfo{}, asset.ErrObjectNotFound
}
