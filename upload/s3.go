package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/GlintPay/storefront/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client uploads need
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	Client PutObjectAPI
	Config config.S3Config
}

// NewS3 works against AWS and S3-compatible stores (R2, MinIO, Supabase storage) alike
func NewS3(ctx context.Context, cfg config.S3Config) (*S3Uploader, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Uploader{Client: client, Config: cfg}, nil
}

func (u *S3Uploader) Put(ctx context.Context, name string, contentType string, body io.Reader) (string, error) {
	key := KeyPrefix + "/" + name

	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Config.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to %s: %w", key, u.Config.Bucket, err)
	}

	return u.publicUrl(key), nil
}

func (u *S3Uploader) publicUrl(key string) string {
	switch {
	case u.Config.PublicBaseUrl != "":
		return strings.TrimSuffix(u.Config.PublicBaseUrl, "/") + "/" + key
	case u.Config.Endpoint != "":
		return strings.TrimSuffix(u.Config.Endpoint, "/") + "/" + u.Config.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Config.Bucket, u.Config.Region, key)
	}
}
