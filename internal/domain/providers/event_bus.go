package providers

import (
	"context"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to record events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RecordEvent) error

	// Subscribe returns a channel of events that closes when ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RecordEvent, error)

	// Unsubscribe drops every subscriber of a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelRecords carries every patient and appointment change
const EventChannelRecords = "clinic:records"
