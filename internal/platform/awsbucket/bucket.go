// Package awsbucket implements the object-store collaborator on top of
// AWS S3.
package awsbucket

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/meandevstar/atlas-backend/internal/config"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
)

// Bucket stores and deletes photo objects in a single S3 bucket.
type Bucket struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	logger   *slog.Logger
}

// New creates a Bucket from the AWS configuration. Static credentials are
// used when configured; otherwise the SDK's default chain applies.
func New(cfg config.AWSConfig, log *slog.Logger) (*Bucket, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}
	if log == nil {
		log = slog.Default()
	}

	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Bucket{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3Bucket,
		logger:   log.With(slog.String("component", "object_store")),
	}, nil
}

// PutObject uploads body under key and returns the object's public URL.
func (b *Bucket) PutObject(ctx context.Context, key string, body []byte) (string, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)

	out, err := b.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		log.Error("failed to upload object", "error", err, "key", key)
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	log.Debug("object uploaded", "key", key)
	return out.Location, nil
}

// DeleteObject removes the object stored under key.
func (b *Bucket) DeleteObject(ctx context.Context, key string) error {
	log := logger.FromContextOrDefault(ctx, b.logger)

	_, err := b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error("failed to delete object", "error", err, "key", key)
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	log.Debug("object deleted", "key", key)
	return nil
}
