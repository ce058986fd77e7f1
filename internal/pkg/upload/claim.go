package upload

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/pkg/filestorage"
)

const releaseTimeout = 10 * time.Second

// Claim is a stored upload whose ownership has not yet passed to a record.
// Release deletes the file unless Keep was called first. All methods are
// safe on a nil claim.
type Claim struct {
	store    filestorage.FileStorage
	key      string
	location string
	logger   zerolog.Logger

	mu       sync.Mutex
	kept     bool
	released bool
}

// Location returns the storage reference to persist with the owning record
func (c *Claim) Location() string {
	if c == nil {
		return ""
	}
	return c.location
}

// Key returns the object key inside the store
func (c *Claim) Key() string {
	if c == nil {
		return ""
	}
	return c.key
}

// Keep transfers ownership of the file to the caller
func (c *Claim) Keep() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.kept = true
	c.mu.Unlock()
}

// Release deletes the stored file unless it was kept. Deletion failures are
// logged and never returned so that they cannot mask the caller's own error.
func (c *Claim) Release(ctx context.Context) {
	if c == nil {
		return
	}

	c.mu.Lock()
	if c.kept || c.released {
		c.mu.Unlock()
		return
	}
	c.released = true
	c.mu.Unlock()

	// the request may already be cancelled; cleanup must still run
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := c.store.Delete(ctx, c.key); err != nil {
		c.logger.Error().Err(err).Str("key", c.key).Msg("Failed to delete uploaded file")
		return
	}
	c.logger.Info().Str("key", c.key).Msg("Uploaded file released")
}
