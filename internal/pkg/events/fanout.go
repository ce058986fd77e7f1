package events

import (
	"context"
	"errors"
)

// MultiPublisher delivers every event to each of its publishers
type MultiPublisher struct {
	publishers []Publisher
}

// NewMultiPublisher creates a MultiPublisher over publishers
func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Publish tries every publisher and joins their errors
func (m *MultiPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, routingKey, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every publisher and joins their errors
func (m *MultiPublisher) Close() error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
