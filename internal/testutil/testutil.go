// Package testutil holds fixtures shared by package tests
package testutil

import (
	"bytes"
	"context"
	"mime"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/migrations"
	"github.com/yigit/placement-portal/internal/config"
	"github.com/yigit/placement-portal/internal/db"
)

// BcryptCost keeps hashing fast in tests
const BcryptCost = 4

// JWTSecret signs tokens in tests
const JWTSecret = "test-secret-key-for-unit-tests"

// NewSQLiteDB opens a migrated SQLite database in a temporary directory
func NewSQLiteDB(t testing.TB) *db.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.NewSQLiteDB(context.Background(), path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(database.Close)

	if err := migrations.NewMigrator(config.DriverSQLite, path, zerolog.Nop()).Up(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

// FilePart is one file of a multipart form
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartBody encodes fields and files as multipart/form-data and returns
// the body with its content type
func MultipartBody(t testing.TB, fields map[string]string, files ...FilePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// FileHeaders parses files into the headers a multipart form would carry
func FileHeaders(t testing.TB, files ...FilePart) map[string][]*multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, nil, files...)
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File
}
