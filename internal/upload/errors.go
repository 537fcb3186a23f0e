package upload

import (
	"errors"
	"fmt"
)

var (
	ErrUploadInProgress     = errors.New("an upload is already in progress")
	ErrIncompleteCredential = errors.New("backend returned no object key or upload url")
)

// ValidationError rejects input before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CredentialError means no upload URL was issued; nothing was written.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("Could not obtain an upload URL: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// TransferError means the PUT to storage failed. The credential is spent.
type TransferError struct {
	ObjectKey string
	Err       error
}

func (e *TransferError) Error() string {
	return e.Err.Error()
}

func (e *TransferError) Unwrap() error { return e.Err }

// ConfirmationError means the bytes reached storage but the backend did not
// record the completion. The object may still exist at AssetURL.
type ConfirmationError struct {
	ObjectKey string
	AssetURL  string
	// Status is set when the backend answered with a rejection.
	Status string
	Err    error
}

func (e *ConfirmationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Upload reached storage but the backend answered %q for %s", e.Status, e.ObjectKey)
	}
	return fmt.Sprintf("Upload reached storage but could not be confirmed: %v", e.Err)
}

func (e *ConfirmationError) Unwrap() error { return e.Err }
