// Package services holds the placement portal's business workflows:
//   - AuthService: registration, login and e-mail verification
//   - JobListingService: recruitment drive management
//   - StudentService: placement-side student records
//   - ApplicationService: eligibility checks and application tracking
package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/pkg/events"
)

// publishEvent sends an event without letting broker failures reach the caller
func publishEvent(ctx context.Context, publisher events.Publisher, logger zerolog.Logger, routingKey string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, payload); err != nil {
		logger.Warn().Err(err).Str("routingKey", routingKey).Msg("Failed to publish event")
	}
}
