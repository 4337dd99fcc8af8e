package ports

import "context"

// OutboundEvent is the payload handed to the notification plane after a
// lifecycle mutation commits: the affected record plus its new status.
type OutboundEvent struct {
	EventID    string
	Name       string
	EntityKind string
	EntityRef  string
	Status     string
	Actor      string
	OccurredAt string
}

// EventPublisher delivers outbound events best-effort after commit.
// Implementations must not be called inside a transaction.
type EventPublisher interface {
	Publish(ctx context.Context, event OutboundEvent) error
}
