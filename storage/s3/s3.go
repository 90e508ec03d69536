// Package s3 implements object storage on AWS S3 or an S3-compatible service.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	obstypes "github.com/dowjones/factiva-core-go/observability/types"
	"github.com/dowjones/factiva-core-go/storage/types"
)

// Config holds S3 adapter settings.
type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint, for MinIO and other
	// S3-compatible services. Enables path-style addressing.
	Endpoint string
	// Timeout bounds the underlying HTTP calls. Zero means the SDK default.
	Timeout time.Duration
}

// Storage stores objects in a single S3 bucket.
type Storage struct {
	client  *s3.Client
	bucket  string
	logger  obstypes.Logger
	metrics obstypes.Metrics
}

var _ types.ObjectStorage = (*Storage)(nil)

// New builds an S3 storage and verifies the bucket is reachable.
func New(ctx context.Context, cfg Config, logger obstypes.Logger, metrics obstypes.Metrics) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 storage requires a bucket name")
	}

	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	s := &Storage{
		client:  client,
		bucket:  cfg.Bucket,
		logger:  logger,
		metrics: metrics,
	}

	headCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		return nil, fmt.Errorf("failed to verify bucket %s: %w", cfg.Bucket, err)
	}

	logger.Info(ctx, "s3 storage initialized", obstypes.Fields{
		"bucket": cfg.Bucket,
		"region": cfg.Region,
	})
	return s, nil
}

// Put uploads reader to the object named key. The content is buffered in
// memory first because PutObject needs a sized body.
func (s *Storage) Put(ctx context.Context, key string, reader io.Reader) (int64, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordDuration("storage.put", time.Since(start).Seconds())
	}()

	buf := &bytes.Buffer{}
	size, err := io.Copy(buf, reader)
	if err != nil {
		s.metrics.RecordError("storage.put", "read")
		return 0, fmt.Errorf("failed to read content: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		s.metrics.RecordError("storage.put", "put_object")
		s.logger.Error(ctx, "failed to put object", err, obstypes.Fields{
			"bucket": s.bucket,
			"key":    key,
		})
		return 0, fmt.Errorf("failed to put object: %w", err)
	}

	s.metrics.RecordSuccess("storage.put")
	s.logger.Debug(ctx, "object stored", obstypes.Fields{
		"bucket": s.bucket,
		"key":    key,
		"bytes":  size,
	})
	return size, nil
}

// Get downloads the object named key.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, types.ErrObjectNotFound
		}
		s.metrics.RecordError("storage.get", "get_object")
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	s.metrics.RecordSuccess("storage.get")
	return out.Body, nil
}

// Exists checks the object named key with a HEAD request.
func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object: %w", err)
	}
	return true, nil
}

func buildAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var optFns []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	if cfg.Timeout > 0 {
		optFns = append(optFns, awsconfig.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return awsconfig.LoadDefaultConfig(ctx, optFns...)
}

func isNotFoundError(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
