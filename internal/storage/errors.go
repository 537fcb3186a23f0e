package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return asset.ErrObjectNotFound
	case "NoSuchBucket":
		return asset.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return asset.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
}

func mapS3Err(err error) error {
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return asset.ErrObjectNotFound
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return asset.ErrObjectNotFound
		case "NoSuchBucket":
			return asset.ErrBucketNotFound
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return asset.ErrUnauthorized
		}
	}
	return fmt.Errorf("%w: %v", asset.ErrInternal, err)
}
