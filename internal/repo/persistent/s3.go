package persistent

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/andreyxaxa/Image-Gallery/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type BlobRepo struct {
	*s3client.S3Client
	bucket string
}

func NewBlobRepo(s3c *s3client.S3Client, bucket string) *BlobRepo {
	return &BlobRepo{s3c, bucket}
}

func (r *BlobRepo) UploadBytes(ctx context.Context, key string, data []byte, contentType string, size int64) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("BlobRepo - UploadBytes - r.Client.PutObject: %w", err)
	}

	return nil
}

// Download returns a lazy, forward-only stream of the object bytes. The
// caller owns the close.
func (r *BlobRepo) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("BlobRepo - Download - r.Client.GetObject: %w", err)
	}

	return result.Body, nil
}

// Delete removes the object. S3 treats deleting an absent key as success,
// which is exactly the idempotency the lifecycle manager relies on.
func (r *BlobRepo) Delete(ctx context.Context, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("BlobRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}

func (r *BlobRepo) ObjectURL(key string) string {
	return r.S3Client.ObjectURL(r.bucket, key)
}
