package mock

import (
	"context"

	"github.com/fhuszti/lsl-go/internal/port"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	ListOut []byte

	// etag values
	EtagList string

	// captured inputs
	GotInput port.ListAssetsInput

	// errors
	ListErr error

	// call flags
	ListCalled bool
}

func (m *HTTPRenderer) RenderListAssets(ctx context.Context, lister port.AssetLister, in port.ListAssetsInput) ([]byte, string, error) {
	m.ListCalled = true
	m.GotInput = in
	return m.ListOut, m.EtagList, m.ListErr
}
