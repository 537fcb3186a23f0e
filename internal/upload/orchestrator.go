// Package upload runs the direct-to-storage upload protocol: acquire a write
// credential from the backend, PUT the bytes to storage, confirm completion.
package upload

import (
	"context"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/fhuszti/lsl-go/internal/format"
	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/transport"
	"github.com/fhuszti/lsl-go/internal/validation"
)

const (
	PathUploadURL      = "/assets/upload-url"
	PathCompleteUpload = "/assets/complete-upload"

	StatusAcknowledged = "acknowledged"
	StatusRejected     = "rejected"
)

// Transport is the part of transport.Client the protocol needs.
type Transport interface {
	RequestJSON(ctx context.Context, path string, opts transport.RequestOptions, out any) error
	UploadBinary(ctx context.Context, url string, body io.Reader, size int64, contentType string, onProgress transport.ProgressFunc) (transport.UploadResult, error)
}

var _ Transport = (*transport.Client)(nil)

type Request struct {
	Category    string `json:"category" validate:"required,max=64"`
	EntityID    string `json:"entity_id" validate:"required,max=128"`
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,max=128,mimetype"`
}

// Credential is a single-use write location issued by the backend.
type Credential struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	AssetURL  string `json:"asset_url"`
}

type completeRequest struct {
	ObjectKey   string `json:"object_key"`
	Category    string `json:"category"`
	EntityID    string `json:"entity_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
	ETag        string `json:"etag,omitempty"`
}

type Completion struct {
	ObjectKey string `json:"object_key"`
	AssetURL  string `json:"asset_url"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// Accepted reports whether the backend durably recorded the upload.
func (c Completion) Accepted() bool {
	switch strings.ToLower(strings.TrimSpace(c.Status)) {
	case "", StatusRejected, "failed", "error":
		return false
	}
	return true
}

// File is the local recording. Body must yield exactly Size bytes.
type File struct {
	Name string
	Size int64
	Body io.Reader
}

type Input struct {
	Request    Request
	File       File
	OnProgress transport.ProgressFunc
}

type Result struct {
	Credential Credential
	ETag       string
	Completion Completion
}

// Orchestrator runs one upload at a time; a concurrent call fails fast with
// ErrUploadInProgress instead of queueing.
type Orchestrator struct {
	tr       Transport
	inFlight atomic.Bool
}

func NewOrchestrator(tr Transport) *Orchestrator {
	return &Orchestrator{tr: tr}
}

// ValidateFile accepts only the supported recording extensions.
func ValidateFile(name string) error {
	if !format.IsAllowedExtension(name) {
		return &ValidationError{Field: "file", Message: "Only mp3, wav, and m4a files are supported."}
	}
	return nil
}

func validateRequest(req Request) error {
	errs := validation.ValidateStruct(req)
	if errs == nil {
		return nil
	}
	fields := validation.ErrorsToMap(errs)
	if len(fields) == 0 {
		return &ValidationError{Message: errs.Error()}
	}
	field := slices.Sorted(maps.Keys(fields))[0]
	return &ValidationError{Field: field, Message: "invalid " + field + ": " + fields[field]}
}

// Upload either returns the confirmed completion or an error from the
// taxonomy in errors.go; no step is retried.
func (o *Orchestrator) Upload(ctx context.Context, in Input) (*Result, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrUploadInProgress
	}
	defer o.inFlight.Store(false)

	if err := ValidateFile(in.File.Name); err != nil {
		return nil, err
	}
	if err := validateRequest(in.Request); err != nil {
		return nil, err
	}

	var cred Credential
	if err := o.tr.RequestJSON(ctx, PathUploadURL, transport.RequestOptions{
		Method: http.MethodPost,
		Body:   in.Request,
	}, &cred); err != nil {
		return nil, &CredentialError{Err: err}
	}
	if cred.ObjectKey == "" || cred.UploadURL == "" {
		return nil, &CredentialError{Err: ErrIncompleteCredential}
	}
	logger.Debugf(ctx, "issued upload url for %s", cred.ObjectKey)

	put, err := o.tr.UploadBinary(ctx, cred.UploadURL, in.File.Body, in.File.Size, in.Request.ContentType, in.OnProgress)
	if err != nil {
		return nil, &TransferError{ObjectKey: cred.ObjectKey, Err: err}
	}

	var done Completion
	if err := o.tr.RequestJSON(ctx, PathCompleteUpload, transport.RequestOptions{
		Method: http.MethodPost,
		Body: completeRequest{
			ObjectKey:   cred.ObjectKey,
			Category:    in.Request.Category,
			EntityID:    in.Request.EntityID,
			Filename:    in.File.Name,
			ContentType: in.Request.ContentType,
			FileSize:    in.File.Size,
			ETag:        put.ETag,
		},
	}, &done); err != nil {
		logger.Warnf(ctx, "⚠️  %s is in storage but unconfirmed: %v", cred.ObjectKey, err)
		return nil, &ConfirmationError{ObjectKey: cred.ObjectKey, AssetURL: cred.AssetURL, Err: err}
	}
	if !done.Accepted() {
		return nil, &ConfirmationError{ObjectKey: cred.ObjectKey, AssetURL: cred.AssetURL, Status: done.Status}
	}

	return &Result{Credential: cred, ETag: put.ETag, Completion: done}, nil
}
