package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
)

type mockS3 struct {
	headObjectFn func(ctx context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error)
	presignPutFn func(ctx context.Context, in *s3.PutObjectInput, opts s3.PresignOptions) (*v4.PresignedHTTPRequest, error)
}

func (m *mockS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return m.headObjectFn(ctx, in)
}

func (m *mockS3) PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return m.presignPutFn(ctx, in, opts)
}

func makeS3Storage(m *mockS3) *S3Storage {
	return &S3Storage{client: m, presigner: m, bucketName: "recordings"}
}

func TestS3_GeneratePresignedUploadURL(t *testing.T) {
	m := &mockS3{
		presignPutFn: func(_ context.Context, in *s3.PutObjectInput, opts s3.PresignOptions) (*v4.PresignedHTTPRequest, error) {
			if aws.ToString(in.Bucket) != "recordings" || aws.ToString(in.Key) != "a/b/c.m4a" {
				t.Errorf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
			}
			if aws.ToString(in.ContentType) != "audio/mp4" {
				t.Errorf("content type = %q", aws.ToString(in.ContentType))
			}
			if opts.Expires != 10*time.Minute {
				t.Errorf("expires = %v", opts.Expires)
			}
			return &v4.PresignedHTTPRequest{URL: "https://s3.example.com/signed", Method: "PUT"}, nil
		},
	}

	out, err := makeS3Storage(m).GeneratePresignedUploadURL(context.Background(), "a/b/c.m4a", "audio/mp4", 10*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "https://s3.example.com/signed" {
		t.Errorf("url = %q", out)
	}
}

func TestS3_StatFile(t *testing.T) {
	m := &mockS3{
		headObjectFn: func(_ context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
			return &s3.HeadObjectOutput{
				ContentLength: aws.Int64(99),
				ContentType:   aws.String("audio/wav"),
				ETag:          aws.String(`"etag-1"`),
			}, nil
		},
	}

	info, err := makeS3Storage(m).StatFile(context.Background(), "a/b/c.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SizeBytes != 99 || info.ContentType != "audio/wav" || info.ETag != "etag-1" {
		t.Errorf("info = %+v", info)
	}
}

func TestMapS3Err(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"typed not found", &types.NotFound{}, asset.ErrObjectNotFound},
		{"typed no such key", &types.NoSuchKey{}, asset.ErrObjectNotFound},
		{"api not found", &smithy.GenericAPIError{Code: "NotFound"}, asset.ErrObjectNotFound},
		{"no bucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}, asset.ErrBucketNotFound},
		{"forbidden", &smithy.GenericAPIError{Code: "Forbidden"}, asset.ErrUnauthorized},
		{"other api", &smithy.GenericAPIError{Code: "SlowDown"}, asset.ErrInternal},
		{"plain", errors.New("dial tcp"), asset.ErrInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapS3Err(tc.in); !errors.Is(got, tc.want) {
				t.Errorf("mapS3Err(%v) = %v; want %v", tc.in, got, tc.want)
			}
		})
	}
	if mapS3Err(nil) != nil {
		t.Error("nil must map to nil")
	}
}
