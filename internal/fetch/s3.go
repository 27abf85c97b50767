package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Fetcher fetches playlist objects from S3, grounded on the same
// aws-sdk-go-v2 client usage the broader pack's recording pipelines rely
// on for storing and retrieving segments.
type S3Fetcher struct {
	client *s3.Client
}

// NewS3Fetcher loads the default AWS config for the given region and
// returns a ready S3Fetcher.
func NewS3Fetcher(ctx context.Context, region string) (*S3Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("fetch: loading AWS config: %w", err)
	}
	return &S3Fetcher{client: s3.NewFromConfig(cfg)}, nil
}

// Get downloads bucket/key and returns its full contents.
func (f *S3Fetcher) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch: s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return nil, fmt.Errorf("fetch: reading s3://%s/%s: %w", bucket, key, err)
	}
	return buf.Bytes(), nil
}
