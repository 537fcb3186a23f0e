package mock

import "context"

// Dispatcher implements task dispatching for tests.
type Dispatcher struct {
	VerifyCalled bool
	VerifyKeys   []string
	VerifyErr    error
}

func (m *Dispatcher) EnqueueVerifyAsset(ctx context.Context, objectKey string) error {
	m.VerifyCalled = true
	m.VerifyKeys = append(m.VerifyKeys, objectKey)
	return m.VerifyErr
}
