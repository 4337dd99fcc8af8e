package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"inspectra/internal/bootstrap/logging"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

const dateLayout = "2006-01-02"

func (s *Service) nowUTC() time.Time {
	return s.now().UTC()
}

func (s *Service) nowString() string {
	return s.nowUTC().Format(time.RFC3339Nano)
}

func (s *Service) todayString() string {
	return s.nowUTC().Format(dateLayout)
}

func parseDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("date is required")
	}
	if _, err := time.Parse(dateLayout, trimmed); err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return trimmed, nil
}

func requireActor(actor string) (string, error) {
	trimmed := strings.TrimSpace(actor)
	if trimmed == "" {
		return "", errors.New("acting user is required")
	}
	return trimmed, nil
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func strPtr(value string) *string {
	return &value
}

func formatPercent(percentage float64) string {
	return strconv.FormatFloat(percentage, 'f', 2, 64) + "%"
}

func cacheEstablishmentStatusKey(reference string) string {
	return "establishment_status:" + reference
}

func cacheCertificateStatusKey(certificateNumber string) string {
	return "certificate_status:" + certificateNumber
}

func (s *Service) setCacheBestEffort(ctx context.Context, key string, value string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, 0)
}

// publishBestEffort hands an event to the notification plane after the
// transaction committed; a delivery failure is logged, never propagated.
func (s *Service) publishBestEffort(ctx context.Context, name string, entityKind string, entityRef string, status string, actor string) {
	if s.publisher == nil {
		return
	}

	event := ports.OutboundEvent{
		EventID:    uuid.NewString(),
		Name:       name,
		EntityKind: entityKind,
		EntityRef:  entityRef,
		Status:     status,
		Actor:      actor,
		OccurredAt: s.nowString(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logging.Warn(ctx, "outbound event publish failed",
			slog.String("event", name),
			slog.String("entity_ref", entityRef),
			slog.Any("err", errs.Loggable(err)),
		)
	}
}

func (s *Service) appendAuditTx(txCtx context.Context, entityKind string, entityRef string, action string, actor string, detail string) error {
	return s.repo.AppendAudit(txCtx, ports.AuditEntry{
		EntityKind: entityKind,
		EntityRef:  entityRef,
		Action:     action,
		Actor:      actor,
		Detail:     detail,
		CreatedAt:  s.nowString(),
	})
}
