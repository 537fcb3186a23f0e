package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/lsl-go/internal/mock"
	"github.com/fhuszti/lsl-go/internal/task"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
	"github.com/hibiken/asynq"
)

func TestVerifyAssetHandler_EmptyKey(t *testing.T) {
	svc := &mock.AssetVerifier{}
	err := VerifyAssetHandler(context.Background(), task.VerifyAssetPayload{ObjectKey: "  "}, svc)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("got error %v; want SkipRetry", err)
	}
	if svc.Called {
		t.Error("service should not be called on empty key")
	}
}

func TestVerifyAssetHandler_ServiceError(t *testing.T) {
	svcErr := errors.New("svc fail")
	svc := &mock.AssetVerifier{Err: svcErr}

	err := VerifyAssetHandler(context.Background(), task.VerifyAssetPayload{ObjectKey: "a/b/c.wav"}, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
	if errors.Is(err, asynq.SkipRetry) {
		t.Error("transient errors must stay retryable")
	}
	if svc.ObjectKey != "a/b/c.wav" {
		t.Errorf("service got key %q", svc.ObjectKey)
	}
}

func TestVerifyAssetHandler_UnknownAsset(t *testing.T) {
	svc := &mock.AssetVerifier{Err: asset.ErrAssetNotFound}

	err := VerifyAssetHandler(context.Background(), task.VerifyAssetPayload{ObjectKey: "a/b/c.wav"}, svc)
	if !errors.Is(err, asset.ErrAssetNotFound) || !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("got error %v; want ErrAssetNotFound and SkipRetry", err)
	}
}

func TestVerifyAssetHandler_Success(t *testing.T) {
	svc := &mock.AssetVerifier{}

	if err := VerifyAssetHandler(context.Background(), task.VerifyAssetPayload{ObjectKey: " a/b/c.wav "}, svc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Called || svc.ObjectKey != "a/b/c.wav" {
		t.Errorf("service called = %v with %q", svc.Called, svc.ObjectKey)
	}
}
