package events

import (
	"context"
	"log/slog"

	"inspectra/internal/bootstrap/logging"
	"inspectra/internal/ports"
)

// LogPublisher is the fallback when no broker is configured: events land in
// the structured log instead of being dropped silently.
type LogPublisher struct{}

var _ ports.EventPublisher = LogPublisher{}

func NewLogPublisher() LogPublisher {
	return LogPublisher{}
}

func (LogPublisher) Publish(ctx context.Context, event ports.OutboundEvent) error {
	logging.Info(ctx, "outbound event",
		slog.String("event_id", event.EventID),
		slog.String("event", event.Name),
		slog.String("entity_kind", event.EntityKind),
		slog.String("entity_ref", event.EntityRef),
		slog.String("status", event.Status),
		slog.String("actor", event.Actor),
		slog.String("occurred_at", event.OccurredAt),
	)
	return nil
}
