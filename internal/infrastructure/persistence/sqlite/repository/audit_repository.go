package repository

import (
	"context"

	"inspectra/internal/errs"
	"inspectra/internal/infrastructure/persistence/sqlite/model"
	"inspectra/internal/ports"
)

func (r *ComplianceRepository) AppendAudit(ctx context.Context, entry ports.AuditEntry) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.AuditEvent{
		EntityKind: entry.EntityKind,
		EntityRef:  entry.EntityRef,
		Action:     entry.Action,
		Actor:      entry.Actor,
		Detail:     entry.Detail,
		CreatedAt:  entry.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert audit event")
	}
	return nil
}

func (r *ComplianceRepository) ListAudit(ctx context.Context, entityKind string, entityRef string, limit int) ([]ports.AuditEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.AuditEvent{}).
		Where("entity_kind = ? AND entity_ref = ?", entityKind, entityRef).
		Order("audit_id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.AuditEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query audit events")
	}

	items := make([]ports.AuditEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.AuditEntry{
			AuditID:    row.AuditID,
			EntityKind: row.EntityKind,
			EntityRef:  row.EntityRef,
			Action:     row.Action,
			Actor:      row.Actor,
			Detail:     row.Detail,
			CreatedAt:  row.CreatedAt,
		})
	}
	return items, nil
}
