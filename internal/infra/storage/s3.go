package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/config"
)

// S3ImageStore stores profile images in an S3 bucket (or any
// S3-compatible endpoint such as MinIO).
type S3ImageStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	logger   *zap.Logger
}

func NewS3ImageStore(ctx context.Context, cfg config.S3Settings, log *zap.Logger) (*S3ImageStore, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3ImageStore{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		logger:   log,
	}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	s.logger.Debug("profile image uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(data)),
	)
	return out.Location, nil
}

func (s *S3ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

var _ port.ImageStore = (*S3ImageStore)(nil)
