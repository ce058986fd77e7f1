package filestorage_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/pkg/filestorage"
)

// Verify that *filestorage.LocalStorage implements FileStorage at compile time.
var _ filestorage.FileStorage = (*filestorage.LocalStorage)(nil)

func newTestStorage(t *testing.T) *filestorage.LocalStorage {
	t.Helper()
	store, err := filestorage.NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), "resumes", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return store
}

func TestLocalStorage_CreateListDelete(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.Create(ctx, "1-cv.pdf", bytes.NewReader([]byte("pdf")), 3); err != nil {
		t.Fatalf("Create: %v", err)
	}

	objects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 1 || objects[0].Key != "1-cv.pdf" || objects[0].Size != 3 {
		t.Fatalf("unexpected objects %+v", objects)
	}

	if err := store.Delete(ctx, "1-cv.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "1-cv.pdf"); err != nil {
		t.Fatalf("deleting a missing file should succeed: %v", err)
	}

	objects, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("expected no objects, got %+v", objects)
	}
}

func TestLocalStorage_CreateNeverOverwrites(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.Create(ctx, "1-cv.pdf", bytes.NewReader([]byte("a")), 1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := store.Create(ctx, "1-cv.pdf", bytes.NewReader([]byte("b")), 1)
	if !errors.Is(err, filestorage.ErrObjectExists) {
		t.Fatalf("expected ErrObjectExists, got %v", err)
	}
}

func TestLocalStorage_RejectsPathKeys(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape.pdf", "dir/cv.pdf"} {
		if err := store.Create(ctx, key, bytes.NewReader(nil), 0); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
}

func TestLocalStorage_LocationRoundTrip(t *testing.T) {
	store, err := filestorage.NewLocalStorage(t.TempDir(), "resumes", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	location := store.Location("1714000000000-cv.pdf")
	if filepath.Base(location) != "1714000000000-cv.pdf" {
		t.Fatalf("unexpected location %q", location)
	}
	if key := store.KeyFromLocation(location); key != "1714000000000-cv.pdf" {
		t.Fatalf("expected key back, got %q", key)
	}
}

func TestLocalStorage_ShortWriteRemovesFile(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.Create(ctx, "1-cv.pdf", bytes.NewReader([]byte("ab")), 5); err == nil {
		t.Fatal("expected short write error")
	}
	objects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("expected partial file removed, got %+v", objects)
	}
}
