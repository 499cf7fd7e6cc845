package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectStore uploads and deletes image objects by key.
type ObjectStore interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// s3Store implements ObjectStore against an AWS S3 bucket.
type s3Store struct {
	client *s3.Client
	bucket string
	region string
	logger zerolog.Logger
}

// NewS3Store creates a new S3-backed object store.
func NewS3Store(ctx context.Context, bucket, region string, logger zerolog.Logger) (ObjectStore, error) {
	logger = logger.With().Str("component", "s3-store").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 store initialised")

	return &s3Store{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *s3Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)

	s.logger.Debug().
		Str("key", key).
		Str("url", url).
		Msg("object uploaded")

	return url, nil
}

// Delete removes the object with the given key.
func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to delete object from S3")
		return fmt.Errorf("failed to delete object from S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	return nil
}
