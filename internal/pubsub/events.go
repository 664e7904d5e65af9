// Package pubsub provides a small typed publish/subscribe broker used to fan
// registry changes and log entries out to interested listeners.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	CreatedEvent EventType = "created"
	DeletedEvent EventType = "deleted"
	UpdatedEvent EventType = "updated"
	LoggedEvent  EventType = "logged"
)

// Event is a single published notification.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels bound to a context.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

