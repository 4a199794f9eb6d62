// Package service holds the adapters between handlers and the outside
// world: media uploads, verification mail and background maintenance.
package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"storekit/commerce-api/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const minMultipartSize = 12 << 20

// Uploader pushes a local temp file to the media host and returns its
// durable URL. Implementations must remove the temp file on both
// success and failure so partial uploads never leak disk.
type Uploader interface {
	Upload(ctx context.Context, localPath, key, contentType string) (string, error)
}

type S3Uploader struct {
	S3        *storage.S3Client
	PublicURL string
	Timeout   time.Duration
}

func NewS3Uploader(s *storage.S3Client, publicURL string) *S3Uploader {
	return &S3Uploader{
		S3:        s,
		PublicURL: strings.TrimRight(publicURL, "/"),
		Timeout:   time.Minute,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, localPath, key, contentType string) (string, error) {
	defer os.Remove(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload file, %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat upload file, %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        u.S3.Bucket,
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(stat.Size()),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	if stat.Size() > minMultipartSize {
		up := manager.NewUploader(u.S3.C, func(up *manager.Uploader) {
			up.Concurrency = 5
			up.PartSize = 6 << 20
		})

		_, err = up.Upload(ctx, input)
	} else {
		_, err = u.S3.C.PutObject(ctx, input)
	}
	if err != nil {
		return "", fmt.Errorf("failed to upload %s, %w", key, err)
	}

	zap.L().Debug("File uploaded", zap.String("key", key), zap.Int64("size", stat.Size()))

	return u.PublicURL + "/" + key, nil
}
