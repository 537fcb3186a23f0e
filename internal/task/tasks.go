package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeVerifyAsset = "asset:verify"

type VerifyAssetPayload struct {
	ObjectKey string `json:"object_key"`
}

// NewVerifyAssetTask creates an Asynq task for verifying an asset by object key.
func NewVerifyAssetTask(objectKey string) (*asynq.Task, error) {
	p := VerifyAssetPayload{ObjectKey: objectKey}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal verify-asset payload: %w", err)
	}
	return asynq.NewTask(TypeVerifyAsset, data, asynq.MaxRetry(5)), nil
}

// ParseVerifyAssetPayload parses the task payload to VerifyAssetPayload.
func ParseVerifyAssetPayload(t *asynq.Task) (VerifyAssetPayload, error) {
	var p VerifyAssetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return VerifyAssetPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
