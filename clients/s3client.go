package clients

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/emzola/blogapi/config"
)

// NewS3Client configures a new AWS S3 object storage client.
func NewS3Client(ctx context.Context, cfg config.Config) (*s3.Client, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
	awsCfg, err := s3Config.LoadDefaultConfig(ctx, s3Config.WithCredentialsProvider(creds), s3Config.WithRegion(cfg.S3.Region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}

// S3ImageStore uploads post images to a single bucket.
type S3ImageStore struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewS3ImageStore returns an image store backed by the configured bucket.
func NewS3ImageStore(ctx context.Context, cfg config.Config) (*S3ImageStore, error) {
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3ImageStore{
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3.Bucket,
		region:   cfg.S3.Region,
	}, nil
}

// Upload stores body under key and returns the object's public URL.
func (s *S3ImageStore) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: int64(len(body)),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return ObjectURL(s.bucket, s.region, key), nil
}

// ObjectURL returns the virtual-hosted URL of an object.
func ObjectURL(bucket, region, key string) string {
	return "https://" + bucket + ".s3." + region + ".amazonaws.com/" + key
}
