package task

import (
	"context"

	"github.com/fhuszti/lsl-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueVerifyAsset(ctx context.Context, objectKey string) error {
	return nil
}
