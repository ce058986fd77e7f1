package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	dir    string // physical directory holding the objects
	prefix string // reference prefix, e.g. uploads/resumes
	logger zerolog.Logger
}

// NewLocalStorage creates a LocalStorage rooted at basePath/subDir, creating it if absent.
func NewLocalStorage(basePath, subDir string, logger zerolog.Logger) (*LocalStorage, error) {
	dir := filepath.Join(basePath, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	logger.Info().Str("path", dir).Msg("Local storage directory ensured")

	return &LocalStorage{
		dir:    dir,
		prefix: path.Join(filepath.ToSlash(basePath), subDir),
		logger: logger,
	}, nil
}

// Create writes r to a new file named key
func (ls *LocalStorage) Create(ctx context.Context, key string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validKey(key) {
		return fmt.Errorf("invalid object key %q", key)
	}

	dstPath := filepath.Join(ls.dir, key)
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	written, err := io.Copy(dst, r)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}
	if size >= 0 && written != size {
		_ = os.Remove(dstPath)
		return fmt.Errorf("short write: %d of %d bytes", written, size)
	}

	ls.logger.Debug().Str("path", dstPath).Int64("size", written).Msg("File saved")
	return nil
}

// Delete removes the file named key; a missing file counts as deleted
func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid object key %q", key)
	}

	physicalPath := filepath.Join(ls.dir, key)
	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ls.logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.logger.Debug().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// List returns the regular files in the storage directory
func (ls *LocalStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(ls.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	objects := make([]ObjectInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		objects = append(objects, ObjectInfo{
			Key:     entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return objects, nil
}

// Location returns the slash-separated path persisted for key
func (ls *LocalStorage) Location(key string) string {
	return path.Join(ls.prefix, key)
}

// KeyFromLocation returns the file name portion of a stored location
func (ls *LocalStorage) KeyFromLocation(location string) string {
	return path.Base(filepath.ToSlash(location))
}

// Dir returns the physical directory
func (ls *LocalStorage) Dir() string {
	return ls.dir
}

func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && filepath.Base(key) == key
}
