package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores blobs in a single bucket of an S3-compatible service. Refs are
// object keys.
type S3 struct {
	client *s3.Client
	bucket string
}

type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

func NewS3(cfg S3Config) (*S3, error) {
	staticResolver := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(staticResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load sdk config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &S3{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3) Save(ctx context.Context, content io.Reader, suggestedName string) (Ref, error) {
	body, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read blob content: %w", err)
	}

	head := body
	if len(head) > 512 {
		head = head[:512]
	}

	key := s.objectKey(suggestedName)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(http.DetectContentType(head)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return Ref(key), nil
}

func (s *S3) Open(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(ref)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download object %s: %w", ref, err)
	}

	return result.Body, nil
}

func (s *S3) Delete(ctx context.Context, ref Ref) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(ref)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", ref, err)
	}
	return nil
}

// objectKey builds a unique key (timestamp_name.ext) under the cleaned
// directory prefix of the naming hint.
func (s *S3) objectKey(suggestedName string) string {
	dir, ext := splitSuggestedName(suggestedName)

	base := strings.ReplaceAll(suggestedName, "\\", "/")
	base = base[strings.LastIndex(base, "/")+1:]
	nameOnly := cleanSegment(strings.TrimSuffix(base, filepath.Ext(base)))
	if nameOnly == "" {
		nameOnly = "blob"
	}

	key := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), nameOnly, ext)
	if dir != "" {
		key = dir + "/" + key
	}
	return key
}
