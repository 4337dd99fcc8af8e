package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/nats-io/nats.go"

	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// NATSPublisher delivers outbound events to the notification plane over
// NATS. Payloads carry the affected record's reference plus its new status.
type NATSPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

var _ ports.EventPublisher = (*NATSPublisher)(nil)

func NewNATSPublisher(url string, subjectPrefix string) (*NATSPublisher, error) {
	trimmedURL := strings.TrimSpace(url)
	if trimmedURL == "" {
		return nil, errors.New("nats url is required")
	}

	prefix := strings.TrimSpace(subjectPrefix)
	if prefix == "" {
		prefix = "compliance"
	}

	conn, err := nats.Connect(trimmedURL, nats.Name("inspectra"))
	if err != nil {
		return nil, errs.Wrap(err, "connect nats")
	}

	return &NATSPublisher{conn: conn, subjectPrefix: prefix}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event ports.OutboundEvent) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if strings.TrimSpace(event.Name) == "" {
		return errors.New("event name is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "marshal event")
	}

	subject := p.subjectPrefix + "." + event.Name
	if err := p.conn.Publish(subject, payload); err != nil {
		return errs.Wrapf(err, "publish %s", subject)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
