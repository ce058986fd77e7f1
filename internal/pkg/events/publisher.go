// Package events publishes placement domain events to a message broker.
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Routing keys
const (
	UserRegistered           = "user.registered"
	ApplicationCreated       = "application.created"
	ApplicationStatusChanged = "application.status_changed"
)

// Publisher sends a JSON-encoded payload under a routing key
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

// UserRegisteredEvent is emitted after a successful registration
type UserRegisteredEvent struct {
	UserID     int64     `json:"userId"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	HasResume  bool      `json:"hasResume"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ApplicationEvent is emitted when an application is created or changes status
type ApplicationEvent struct {
	ApplicationID int64     `json:"applicationId"`
	StudentID     int64     `json:"studentId"`
	JobListingID  int64     `json:"jobListingId"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// LogPublisher writes events to the log when no broker is configured
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a LogPublisher
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event
func (p *LogPublisher) Publish(_ context.Context, routingKey string, payload interface{}) error {
	p.logger.Debug().Str("routingKey", routingKey).Interface("payload", payload).Msg("Event published")
	return nil
}

// Close is a no-op
func (p *LogPublisher) Close() error {
	return nil
}
