package datasource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/okian/edgeboard/internal/domain/table"
	"github.com/okian/edgeboard/pkg/logger"
)

// ObjectGetter is the part of the S3 client S3Source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads datasets from a bucket, keyed by prefix + id.
type S3Source struct {
	client ObjectGetter
	bucket string
	prefix string
	logger logger.Logger
}

// NewS3Client loads the default AWS credential chain for region.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// NewS3Source creates a source over bucket.
func NewS3Source(client ObjectGetter, bucket string, opts ...S3Option) *S3Source {
	s := &S3Source{client: client, bucket: bucket, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Source. A missing key is terminal; transport errors are retryable.
func (s *S3Source) Fetch(ctx context.Context, id string) (*table.Table, error) {
	key := s.prefix + strings.TrimPrefix(id, "/")
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		switch {
		case errors.As(err, &missing):
			return nil, terminal(id, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.bucket, key))
		case ctx.Err() != nil:
			return nil, terminal(id, ctx.Err())
		default:
			s.logger.Warn(ctx, "s3 get object failed", logger.String("key", key), logger.Error(err))
			return nil, retryable(id, fmt.Errorf("%w: %v", ErrFetch, err))
		}
	}
	defer func() { _ = out.Body.Close() }()

	t, err := Decode(id, out.Body)
	if err != nil {
		return nil, terminal(id, err)
	}
	return t, nil
}
