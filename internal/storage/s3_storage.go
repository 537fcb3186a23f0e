package storage

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
)

type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

type S3Storage struct {
	client     s3Client
	presigner  s3Presigner
	bucketName string
}

// compile-time check: *S3Storage must satisfy port.Storage
var _ port.Storage = (*S3Storage)(nil)

// NewS3Storage builds an S3 backed storage. A custom endpoint switches to
// path-style addressing for S3-compatible services.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	logger.Info(ctx, "initialising s3 client...")

	opts := []func(*awsCfg.LoadOptions) error{awsCfg.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsConf, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsConf, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: cfg.Bucket,
	}, nil
}

func (s *S3Storage) Name() string { return config.StorageProviderS3 }

// GeneratePresignedUploadURL signs a PUT for fileKey; the uploader must send
// the same Content-Type header.
func (s *S3Storage) GeneratePresignedUploadURL(ctx context.Context, fileKey, contentType string, expiry time.Duration) (string, error) {
	logger.Infof(ctx, "generating a presigned upload link for file %q in bucket %q...", fileKey, s.bucketName)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(fileKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", mapS3Err(err)
	}
	return req.URL, nil
}

func (s *S3Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	logger.Infof(ctx, "getting stats on file %q in bucket %q...", fileKey, s.bucketName)

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return port.FileInfo{}, mapS3Err(err)
	}
	return port.FileInfo{
		SizeBytes:   aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
	}, nil
}
