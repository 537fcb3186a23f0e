package transport

import "fmt"

// TransportError reports a backend call that failed at the HTTP level. Status
// is 0 when no response was received.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if text := errorText(e.Body); text != "" {
		return text
	}
	if e.Err != nil {
		return fmt.Sprintf("request failed with status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// EnvelopeError reports a 2xx response whose envelope carried a non-zero code.
type EnvelopeError struct {
	Code    int
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with code %d", e.Code)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// UploadTransportError reports a failed PUT to a write credential's URL.
type UploadTransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *UploadTransportError) Error() string {
	if e.Status == 0 {
		return "Upload failed. Please check the network and retry."
	}
	return fmt.Sprintf("Upload failed with status %d", e.Status)
}

func (e *UploadTransportError) Unwrap() error { return e.Err }
