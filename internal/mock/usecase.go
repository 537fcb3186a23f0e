package mock

import (
	"context"

	"github.com/fhuszti/lsl-go/internal/port"
)

// UploadURLIssuer implements port.UploadURLIssuer for tests.
type UploadURLIssuer struct {
	Out    port.IssueUploadURLOutput
	Err    error
	In     port.IssueUploadURLInput
	Called bool
}

func (m *UploadURLIssuer) IssueUploadURL(ctx context.Context, in port.IssueUploadURLInput) (port.IssueUploadURLOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// UploadCompleter implements port.UploadCompleter for tests.
type UploadCompleter struct {
	Out    port.CompleteUploadOutput
	Err    error
	In     port.CompleteUploadInput
	Called bool
}

func (m *UploadCompleter) CompleteUpload(ctx context.Context, in port.CompleteUploadInput) (port.CompleteUploadOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// AssetLister implements port.AssetLister for tests.
type AssetLister struct {
	Out    *port.ListAssetsOutput
	Err    error
	In     port.ListAssetsInput
	Called bool
}

func (m *AssetLister) ListAssets(ctx context.Context, in port.ListAssetsInput) (*port.ListAssetsOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// AssetVerifier implements port.AssetVerifier for tests.
type AssetVerifier struct {
	Err       error
	ObjectKey string
	Called    bool
}

func (m *AssetVerifier) VerifyAsset(ctx context.Context, objectKey string) error {
	m.Called = true
	m.ObjectKey = objectKey
	return m.Err
}
