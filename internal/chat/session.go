package chat

import (
	"context"

	"rawkart/internal/model"
)

// Session is the interface for one connected client's transport channel.
// It abstracts the underlying connection so the coordinator can be exercised
// with in-memory sessions in tests.
type Session interface {
	// ID returns the unique identifier of this connection
	ID() string

	// Deliver enqueues an event for this session without blocking. It
	// returns false when the session can no longer accept events (buffer
	// full or connection closed); the coordinator drops such sessions.
	Deliver(ev Event) bool

	// Close shuts down the session's transport
	Close()
}

// MessageLog is the durable, append-only store of chat messages keyed by
// room identity. The coordinator only ever appends and reads; it never
// mutates persisted bodies.
type MessageLog interface {
	// Append persists one message
	Append(ctx context.Context, msg *model.Message) error

	// FetchRecent returns the most recent messages of a room in
	// chronological order, oldest first
	FetchRecent(ctx context.Context, roomID string, limit int) ([]model.Message, error)
}
