package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// MinIOConfig holds the connection settings of the object store
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// Prefix is prepended to every object key, e.g. resumes
	Prefix string
}

// MinIOStorage keeps objects in a MinIO (or any S3 compatible) bucket
type MinIOStorage struct {
	client *minio.Client
	cfg    MinIOConfig
	logger zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

// NewMinIOStorage creates the client and makes a best-effort attempt to create the bucket
func NewMinIOStorage(ctx context.Context, cfg MinIOConfig, logger zerolog.Logger) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	s := &MinIOStorage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}

	ensureCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.ensureBucket(ensureCtx); err != nil {
		// retried on first use
		logger.Error().Err(err).
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Msg("MinIO not ready during startup")
	}

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", cfg.Bucket).
		Bool("ssl", cfg.UseSSL).
		Msg("Connected to MinIO")

	return s, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	if s.bucketEnsured {
		return nil
	}

	backoff := 500 * time.Millisecond
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("minio not ready: %w", err)
		}

		exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
		if err != nil {
			time.Sleep(backoff)
			continue
		}

		if !exists {
			if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
				time.Sleep(backoff)
				continue
			}
			s.logger.Info().Str("bucket", s.cfg.Bucket).Msg("Created new bucket")
		}

		s.bucketEnsured = true
		return nil
	}
}

func (s *MinIOStorage) objectName(key string) string {
	return path.Join(s.cfg.Prefix, key)
}

// Create uploads r under key unless an object with that key already exists.
// The existence check and the upload are two requests, so the millisecond
// naming scheme remains the primary collision guard.
func (s *MinIOStorage) Create(ctx context.Context, key string, r io.Reader, size int64) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	name := s.objectName(key)
	if _, err := s.client.StatObject(ctx, s.cfg.Bucket, name, minio.StatObjectOptions{}); err == nil {
		return ErrObjectExists
	} else if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to stat object: %w", err)
	}

	info, err := s.client.PutObject(ctx, s.cfg.Bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentTypeFor(key),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.Debug().
		Str("bucket", s.cfg.Bucket).
		Str("object", name).
		Str("etag", info.ETag).
		Int64("size", info.Size).
		Msg("File uploaded to MinIO")
	return nil
}

// Delete removes the object; S3 semantics make missing objects a no-op
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	name := s.objectName(key)
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.Debug().Str("bucket", s.cfg.Bucket).Str("object", name).Msg("File deleted from MinIO")
	return nil
}

// List returns every object under the configured prefix
func (s *MinIOStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	prefix := s.cfg.Prefix
	if prefix != "" {
		prefix += "/"
	}

	var objects []ObjectInfo
	for object := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:     path.Base(object.Key),
			Size:    object.Size,
			ModTime: object.LastModified,
		})
	}
	return objects, nil
}

// Location returns bucket/prefix/key
func (s *MinIOStorage) Location(key string) string {
	return path.Join(s.cfg.Bucket, s.objectName(key))
}

// KeyFromLocation returns the object name without bucket or prefix
func (s *MinIOStorage) KeyFromLocation(location string) string {
	return path.Base(location)
}

func contentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
