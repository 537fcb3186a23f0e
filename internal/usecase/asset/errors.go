package asset

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

var ErrAssetNotFound = errors.New("asset not found")

// Rejections of a completion request. Their messages are returned to the client as is.
var (
	ErrObjectKeyRequired = errors.New("object_key is required")
	ErrObjectKeyFormat   = errors.New("object_key must be in format: {category}/{entity_id}/{filename}")
	ErrCategoryMismatch  = errors.New("category does not match object_key")
	ErrEntityIDMismatch  = errors.New("entity_id does not match object_key")
)

// IsInvalidCompletion reports whether err is a client error of CompleteUpload.
func IsInvalidCompletion(err error) bool {
	return errors.Is(err, ErrObjectKeyRequired) ||
		errors.Is(err, ErrObjectKeyFormat) ||
		errors.Is(err, ErrCategoryMismatch) ||
		errors.Is(err, ErrEntityIDMismatch)
}
