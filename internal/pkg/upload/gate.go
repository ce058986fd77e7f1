// Package upload validates multipart resume uploads and stores them under
// collision-resistant names. Stored files are handed out as claims that are
// deleted on release unless the caller kept them.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/filestorage"
)

// FieldName is the only multipart file field accepted
const FieldName = "resume"

// DefaultMaxBytes caps an uploaded resume at 5 MiB
const DefaultMaxBytes int64 = 5 << 20

// maxNameAttempts bounds the retries when a timestamped name is taken
const maxNameAttempts = 1000

// Rejection messages
const (
	MsgUnexpectedField = "Unexpected field"
	MsgInvalidFileType = "Invalid file type. Only PDF and Word documents are allowed."
	MsgFileTooLarge    = "File too large"
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)

// Gate validates and stores resume uploads
type Gate struct {
	store    filestorage.FileStorage
	maxBytes int64
	now      func() time.Time
	logger   zerolog.Logger
}

// NewGate creates a gate writing to store; maxBytes <= 0 selects DefaultMaxBytes
func NewGate(store filestorage.FileStorage, maxBytes int64, logger zerolog.Logger) *Gate {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Gate{
		store:    store,
		maxBytes: maxBytes,
		now:      time.Now,
		logger:   logger,
	}
}

// MaxBytes returns the per-file size limit
func (g *Gate) MaxBytes() int64 {
	return g.maxBytes
}

// Accept checks the files of a multipart form and stores the resume if one was sent.
// A nil claim with a nil error means no file was uploaded.
func (g *Gate) Accept(ctx context.Context, files map[string][]*multipart.FileHeader) (*Claim, error) {
	var header *multipart.FileHeader
	for field, headers := range files {
		if len(headers) == 0 {
			continue
		}
		if field != FieldName || len(headers) > 1 {
			return nil, apperrors.NewFileUploadError(MsgUnexpectedField)
		}
		header = headers[0]
	}
	if header == nil {
		return nil, nil
	}

	if !AllowedExtension(header.Filename) {
		return nil, apperrors.NewFileUploadError(MsgInvalidFileType)
	}
	if header.Size > g.maxBytes {
		return nil, apperrors.NewFileUploadError(MsgFileTooLarge)
	}

	key, err := g.persist(ctx, header)
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("filename", header.Filename).
		Str("key", key).
		Int64("size", header.Size).
		Msg("Resume stored")

	return &Claim{
		store:    g.store,
		key:      key,
		location: g.store.Location(key),
		logger:   g.logger,
	}, nil
}

func (g *Gate) persist(ctx context.Context, header *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(header.Filename)
	millis := g.now().UnixMilli()

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		key := fmt.Sprintf("%d-%s", millis+int64(attempt), name)

		err := g.write(ctx, key, header)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, filestorage.ErrObjectExists) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free file name for %q after %d attempts", name, maxNameAttempts)
}

func (g *Gate) write(ctx context.Context, key string, header *multipart.FileHeader) error {
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// header.Size comes from the parsed part; never trust it past the limit
	reader := io.LimitReader(file, g.maxBytes+1)
	if err := g.store.Create(ctx, key, reader, header.Size); err != nil {
		return err
	}
	return nil
}

// AllowedExtension reports whether filename has a resume extension, ignoring case
func AllowedExtension(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// SanitizeFilename replaces every character outside [a-zA-Z0-9.-] with an underscore
func SanitizeFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(filename), "_")
}
