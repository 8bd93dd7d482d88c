package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const DefaultRegion = "us-east-1"

type S3Options struct {
	BucketName      string
	AccessKeyID     string
	SecretAccessKey string
	Region          string

	// Endpoint overrides the S3 endpoint. Used by the test suite to target a
	// local MinIO instance.
	Endpoint string
}

func (o S3Options) loadOptions() []func(*config.LoadOptions) error {
	region := o.Region
	if region == "" {
		region = DefaultRegion
	}

	configs := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, "")),
	}

	if o.Endpoint != "" {
		endpoint := o.Endpoint
		configs = append(configs, config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               endpoint,
				HostnameImmutable: true,
				PartitionID:       "aws",
			}, nil
		})))
	}

	return configs
}

func NewS3(opts S3Options) (Provider, error) {
	if opts.BucketName == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts.loadOptions()...)
	if err != nil {
		return nil, err
	}
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.Endpoint != ""
	})

	return &s3Provider{
		bucketName: aws.String(opts.BucketName),
		client:     s3Client,
		uploader:   manager.NewUploader(s3Client),
	}, nil
}

type s3Provider struct {
	bucketName *string
	client     *s3.Client
	uploader   *manager.Uploader
}

func coerceAWSError(key string, err error) error {
	if err == nil {
		return nil
	}

	var (
		bne    *types.NoSuchBucket
		apiErr smithy.APIError
	)
	if errors.As(err, &bne) {
		return ErrNotExist{path: key, err: err}
	}

	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "NoSuchBucket":
			return ErrNotExist{path: key, err: err}
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return ErrAccessDenied{path: key, code: code, err: err}
		}
	}

	return err
}

func (s *s3Provider) Put(ctx context.Context, key, contentType string, _ int64, body io.Reader) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      s.bucketName,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})

	return coerceAWSError(key, err)
}

func (s *s3Provider) URLFor(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", *s.bucketName, key)
}
