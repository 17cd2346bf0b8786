package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/finacals/finacals-backend/internal/config"
)

// S3ReportArchive implements ReportArchive using AWS S3
type S3ReportArchive struct {
	client *s3.Client
	bucket string
}

// NewS3ReportArchive creates a new S3 report archive
func NewS3ReportArchive(ctx context.Context, s3cfg cfg.S3Config) (*S3ReportArchive, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3cfg.Region),
	}

	if s3cfg.AccessKeyID != "" && s3cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				s3cfg.AccessKeyID,
				s3cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Endpoint override for MinIO/LocalStack local dev
	var client *s3.Client
	if s3cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	archive := &S3ReportArchive{
		client: client,
		bucket: s3cfg.Bucket,
	}

	// Verify connectivity up front rather than on the first report
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s3cfg.Bucket)}); err != nil {
		return nil, fmt.Errorf("bucket %s not reachable: %w", s3cfg.Bucket, err)
	}

	return archive, nil
}

// Upload stores a report copy and returns its object URI
func (a *S3ReportArchive) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectPath),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", a.bucket, objectPath), nil
}
