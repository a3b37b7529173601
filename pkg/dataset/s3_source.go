package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the part of the S3 client the source needs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config holds configuration for S3Source.
type S3Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string // Optional custom endpoint (MinIO, LocalStack)
	AccessKeyID     string // Optional static credentials
	SecretAccessKey string
	Format          string
}

// S3Source reads a dataset object from S3-compatible storage
type S3Source struct {
	client     ObjectGetter
	bucket     string
	key        string
	format     Format
	compressed bool
}

// NewS3Source creates an S3-backed source using the default AWS credential
// chain unless static credentials are given.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3SourceWithClient(client, cfg.Bucket, cfg.Key, cfg.Format)
}

// NewS3SourceWithClient creates a source around an existing client
func NewS3SourceWithClient(client ObjectGetter, bucket, key, format string) (*S3Source, error) {
	f, compressed, err := resolveFormat(key, format)
	if err != nil {
		return nil, err
	}
	return &S3Source{
		client:     client,
		bucket:     bucket,
		key:        key,
		format:     f,
		compressed: compressed,
	}, nil
}

// Name returns the object URL
func (s *S3Source) Name() string { return fmt.Sprintf("s3://%s/%s", s.bucket, s.key) }

// Load downloads and decodes the object
func (s *S3Source) Load(ctx context.Context) (*Dataset, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, newLoadError("get", s.Name(), 0, err)
	}
	defer func() { _ = out.Body.Close() }()

	var body io.Reader = out.Body
	body, err = maybeDecompress(body, s.compressed)
	if err != nil {
		return nil, newLoadError("decompress", s.Name(), 0, err)
	}
	return decode(body, s.format, s.Name())
}

// Close is a no-op; the SDK client holds no connections that need closing
func (s *S3Source) Close() error { return nil }
