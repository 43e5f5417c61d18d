package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"fetchlink/config"
	"fetchlink/internal/domain"
	"fetchlink/internal/transfer"
	"fetchlink/observability/types"
)

// S3Scheme prefixes destinations stored as S3 objects.
const S3Scheme = "s3://"

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes links as S3 objects addressed by s3://bucket/key.
type S3Store struct {
	client  S3API
	timeout time.Duration
	logger  types.Logger
	metrics types.Metrics
}

// NewS3Store creates an S3 backed LinkStore from the storage settings.
//
// Parameters:
//   - cfg: Storage settings. An empty Region is resolved by the AWS default
//     chain. Static credentials are used when both keys are present,
//     otherwise the default credential chain applies
//   - logger: Logger for store events
//   - metrics: Collector for the "store" operation
//
// Returns:
//   - An S3Store, or an error when cfg is invalid or the AWS configuration
//     cannot be loaded
func NewS3Store(cfg *config.StorageConfig, logger types.Logger, metrics types.Metrics) (*S3Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid S3 configuration: %w", err)
	}

	awsCfg, err := buildAWSConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	store := NewS3StoreWithClient(client, logger, metrics)
	store.timeout = cfg.Timeout
	return store, nil
}

// NewS3StoreWithClient wraps an existing S3 client.
func NewS3StoreWithClient(client S3API, logger types.Logger, metrics types.Metrics) *S3Store {
	return &S3Store{
		client:  client,
		logger:  logger.WithFields(types.Fields{"store": "s3"}),
		metrics: metrics,
	}
}

// StoreLink puts buf as the object named by dest. A put replaces any
// existing object.
func (s *S3Store) StoreLink(ctx context.Context, dest string, buf *transfer.Buffer) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordDuration(operationStore, time.Since(start).Seconds())
	}()

	bucket, key, err := ParseS3URI(dest)
	if err != nil {
		s.metrics.RecordError(operationStore, domain.MetricLabel(err))
		return err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	data := buf.Bytes()
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentTypeFor(key, data)),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		ioErr := domain.NewIOError(putErrorMessage(bucket, key, err), err)
		s.metrics.RecordError(operationStore, domain.MetricLabel(ioErr))
		s.logger.Error(ctx, "Failed to put object", err, types.Fields{
			"bucket": bucket,
			"key":    key,
		})
		return ioErr
	}

	s.metrics.RecordSuccess(operationStore)
	s.logger.Debug(ctx, "Object stored", types.Fields{
		"bucket": bucket,
		"key":    key,
		"size":   len(data),
	})
	return nil
}

// ParseS3URI splits s3://bucket/key. Both parts are required.
func ParseS3URI(dest string) (bucket, key string, err error) {
	if !strings.HasPrefix(dest, S3Scheme) {
		return "", "", domain.NewIOError(fmt.Sprintf("not an S3 destination: %s", dest), nil)
	}

	rest := strings.TrimPrefix(dest, S3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", domain.NewIOError(fmt.Sprintf("S3 destination needs a bucket and an object key: %s", dest), nil)
	}
	return bucket, key, nil
}

func contentTypeFor(key string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

func putErrorMessage(bucket, key string, err error) string {
	var nsb *s3types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Sprintf("bucket %s does not exist", bucket)
	}
	return fmt.Sprintf("cannot put s3://%s/%s", bucket, key)
}

func buildAWSConfig(storageConfig *config.StorageConfig) (aws.Config, error) {
	var optFns []func(*awsconfig.LoadOptions) error
	s3Config := storageConfig.S3

	if s3Config.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(s3Config.Region))
	}

	if s3Config.AccessKeyID != "" && s3Config.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				s3Config.AccessKeyID,
				s3Config.SecretAccessKey,
				"",
			),
		))
	}

	if storageConfig.MaxRetries > 0 {
		optFns = append(optFns, awsconfig.WithRetryMaxAttempts(storageConfig.MaxRetries))
	}

	optFns = append(optFns, awsconfig.WithHTTPClient(&http.Client{
		Timeout: storageConfig.Timeout,
	}))

	return awsconfig.LoadDefaultConfig(context.Background(), optFns...)
}
