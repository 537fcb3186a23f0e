package port

import "context"

// TaskDispatcher enqueues asynchronous tasks related to asset processing.
type TaskDispatcher interface {
	EnqueueVerifyAsset(ctx context.Context, objectKey string) error
}
