package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Mirror wraps a local store and additionally uploads every asset to an
// S3 bucket. Mirror failures are logged, never returned: local storage is
// the source of truth and a missing mirror copy is recoverable.
type S3Mirror struct {
	local    *LocalStore
	uploader *manager.Uploader
	bucket   string
	prefix   string
	logger   *zap.Logger
}

// NewS3Mirror creates a mirroring store over the given S3 client.
func NewS3Mirror(local *LocalStore, client *s3.Client, bucket, prefix string, logger *zap.Logger) *S3Mirror {
	return &S3Mirror{
		local:    local,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		logger:   logger,
	}
}

// SaveUpload writes locally, then mirrors the stored file to S3.
func (s *S3Mirror) SaveUpload(ctx context.Context, filename string, body io.Reader) (string, error) {
	localPath, err := s.local.SaveUpload(ctx, filename, body)
	if err != nil {
		return "", err
	}

	f, err := os.Open(localPath)
	if err != nil {
		s.logger.Warn("S3 mirror skipped, cannot reopen asset",
			zap.String("path", localPath), zap.Error(err))
		return localPath, nil
	}
	defer f.Close()

	s.mirror(ctx, localPath, f)
	return localPath, nil
}

// SaveResultDoc writes locally, then mirrors the document to S3.
func (s *S3Mirror) SaveResultDoc(ctx context.Context, baseName string, data []byte) (string, error) {
	localPath, err := s.local.SaveResultDoc(ctx, baseName, data)
	if err != nil {
		return "", err
	}
	s.mirror(ctx, localPath, bytes.NewReader(data))
	return localPath, nil
}

func (s *S3Mirror) mirror(ctx context.Context, localPath string, body io.Reader) {
	key := path.Join(s.prefix, filepath.Base(localPath))
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		s.logger.Warn("Failed to mirror asset to S3",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err))
		return
	}
	s.logger.Debug("Asset mirrored to S3",
		zap.String("bucket", s.bucket),
		zap.String("key", fmt.Sprintf("s3://%s/%s", s.bucket, key)))
}
