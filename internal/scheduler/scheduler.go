// Package scheduler runs the periodic maintenance jobs of the portal
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/pkg/filestorage"
)

// jobTimeout bounds a single run of any job
const jobTimeout = 5 * time.Minute

// ReferenceSource reports the stored resume locations a table still points at
type ReferenceSource interface {
	ResumeReferences(ctx context.Context) ([]string, error)
}

// TokenPurger removes verification tokens that expired before now
type TokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Config holds the cron specs of the jobs
type Config struct {
	OrphanSweepSpec string
	OrphanGrace     time.Duration
	TokenPurgeSpec  string
}

// Scheduler checks for and removes leftovers that request handlers could
// not clean up themselves, such as resumes orphaned by a crash mid-registration
type Scheduler struct {
	cron    *cron.Cron
	cfg     Config
	store   filestorage.FileStorage
	sources []ReferenceSource
	tokens  TokenPurger
	now     func() time.Time
	logger  zerolog.Logger
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg Config, store filestorage.FileStorage, tokens TokenPurger, logger zerolog.Logger, sources ...ReferenceSource) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cfg:     cfg,
		store:   store,
		sources: sources,
		tokens:  tokens,
		now:     time.Now,
		logger:  logger,
	}
}

// Start registers the jobs and starts the cron loop in its own goroutine
func (s *Scheduler) Start() error {
	if s.cfg.OrphanSweepSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.OrphanSweepSpec, s.runOrphanSweep); err != nil {
			return fmt.Errorf("invalid orphan sweep schedule %q: %w", s.cfg.OrphanSweepSpec, err)
		}
	}
	if s.cfg.TokenPurgeSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.TokenPurgeSpec, s.runTokenPurge); err != nil {
			return fmt.Errorf("invalid token purge schedule %q: %w", s.cfg.TokenPurgeSpec, err)
		}
	}

	s.cron.Start()
	s.logger.Info().
		Str("orphanSweep", s.cfg.OrphanSweepSpec).
		Str("tokenPurge", s.cfg.TokenPurgeSpec).
		Msg("Background scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs up to ctx's deadline
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info().Msg("Background scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn().Msg("Background scheduler stopped before running jobs finished")
	}
}

func (s *Scheduler) runOrphanSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.SweepOrphans(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Orphan resume sweep failed")
		return
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("Orphan resumes removed")
	}
}

func (s *Scheduler) runTokenPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	purged, err := s.PurgeExpiredTokens(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Verification token purge failed")
		return
	}
	s.logger.Debug().Int64("purged", purged).Msg("Expired verification tokens purged")
}

// SweepOrphans deletes stored resumes that no record references and that
// are older than the grace period. Younger files may belong to a
// registration that has not committed yet.
func (s *Scheduler) SweepOrphans(ctx context.Context) (int, error) {
	objects, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing stored resumes: %w", err)
	}
	if len(objects) == 0 {
		return 0, nil
	}

	referenced := make(map[string]struct{})
	for _, source := range s.sources {
		locations, err := source.ResumeReferences(ctx)
		if err != nil {
			return 0, fmt.Errorf("error loading resume references: %w", err)
		}
		for _, location := range locations {
			referenced[s.store.KeyFromLocation(location)] = struct{}{}
		}
	}

	cutoff := s.now().Add(-s.cfg.OrphanGrace)
	removed := 0
	for _, object := range objects {
		if _, ok := referenced[object.Key]; ok {
			continue
		}
		if object.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, object.Key); err != nil {
			s.logger.Warn().Err(err).Str("key", object.Key).Msg("Failed to delete orphan resume")
			continue
		}
		removed++
	}
	return removed, nil
}

// PurgeExpiredTokens removes verification tokens past their expiry
func (s *Scheduler) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}
