// Package storage puts uploaded attachment bytes into MinIO and hands back
// the metadata that projects, modules, requirements and tasks keep.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/attachment"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var ErrStorageUnavailable = apperror.New(
	apperror.CodeServiceUnavailable,
	"File storage is not configured",
	http.StatusServiceUnavailable,
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Uploader interface {
	UploadAll(ctx context.Context, scope string, files []*multipart.FileHeader) (attachment.Files, error)
}

// objectPutter is the part of *minio.Client the store needs.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type MinioStore struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
	now           func() time.Time
	logger        *zap.Logger
}

// NewMinioStore accepts a nil client; every upload then fails with
// ErrStorageUnavailable.
func NewMinioStore(client *minio.Client, bucket, publicBaseURL string, logger ...*zap.Logger) *MinioStore {
	var putter objectPutter
	if client != nil {
		putter = client
	}
	return newStore(putter, bucket, publicBaseURL, logger...)
}

func newStore(client objectPutter, bucket, publicBaseURL string, logger ...*zap.Logger) *MinioStore {
	l := zap.L().Named("storage.minio")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.minio")
	}
	return &MinioStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
		logger:        l,
	}
}

func (s *MinioStore) UploadAll(ctx context.Context, scope string, files []*multipart.FileHeader) (attachment.Files, error) {
	out := make(attachment.Files, 0, len(files))
	if len(files) == 0 {
		return out, nil
	}
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}

	for _, fh := range files {
		f, err := s.upload(ctx, scope, fh)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *MinioStore) upload(ctx context.Context, scope string, fh *multipart.FileHeader) (attachment.File, error) {
	src, err := fh.Open()
	if err != nil {
		return attachment.File{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := s.objectName(scope, fh.Filename)
	if _, err := s.client.PutObject(ctx, s.bucket, objectName, src, fh.Size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		s.logger.Error("put object failed",
			zap.String("object", objectName),
			zap.Error(err),
		)
		return attachment.File{}, fmt.Errorf("upload file: %w", err)
	}

	s.logger.Debug("object stored", zap.String("object", objectName), zap.Int64("size", fh.Size))

	return attachment.File{
		FileName: fh.Filename,
		FileURL:  s.publicURL(objectName),
		FileType: contentType,
		FileSize: fh.Size,
	}, nil
}

func (s *MinioStore) objectName(scope, fileName string) string {
	scope = strings.Trim(scope, "/")
	if scope == "" {
		scope = "misc"
	}
	return fmt.Sprintf("%s/%s/%s%s",
		scope,
		s.now().Format("2006/01/02"),
		uuid.NewString(),
		strings.ToLower(filepath.Ext(fileName)),
	)
}

func (s *MinioStore) publicURL(objectName string) string {
	if s.publicBaseURL == "" {
		return "/" + s.bucket + "/" + objectName
	}
	return s.publicBaseURL + "/" + s.bucket + "/" + objectName
}
