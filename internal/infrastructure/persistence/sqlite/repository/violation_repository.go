package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/infrastructure/persistence/sqlite/model"
	"inspectra/internal/ports"
)

func (r *ComplianceRepository) CreateViolation(ctx context.Context, violation ports.Violation) (ports.Violation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Violation{}, err
	}

	row := model.Violation{
		InspectionID:       violation.InspectionID,
		EstablishmentID:    violation.EstablishmentID,
		Category:           violation.Category,
		Severity:           string(violation.Severity),
		Description:        violation.Description,
		Status:             string(violation.Status),
		CorrectiveDeadline: violation.CorrectiveDeadline,
		ReportedBy:         violation.ReportedBy,
		CreatedAt:          violation.CreatedAt,
		UpdatedAt:          violation.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Violation{}, errs.Wrap(err, "insert violation")
	}
	return mapViolation(row), nil
}

func (r *ComplianceRepository) GetViolation(ctx context.Context, violationID uint64) (ports.Violation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Violation{}, err
	}

	var row model.Violation
	if err := db.Where("violation_id = ?", violationID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Violation{}, fmt.Errorf("%w: violation %d", compliance.ErrNotFound, violationID)
		}
		return ports.Violation{}, errs.Wrap(err, "query violation")
	}
	return mapViolation(row), nil
}

func (r *ComplianceRepository) ListViolations(ctx context.Context, filter ports.ViolationFilter) ([]ports.Violation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Violation{})
	if filter.EstablishmentID != 0 {
		query = query.Where("establishment_id = ?", filter.EstablishmentID)
	}
	if filter.InspectionID != 0 {
		query = query.Where("inspection_id = ?", filter.InspectionID)
	}
	if filter.OpenOnly {
		query = query.Where("status IN ?", []string{
			string(compliance.ViolationOpen),
			string(compliance.ViolationInProgress),
		})
	}
	if since := strings.TrimSpace(filter.Since); since != "" {
		query = query.Where("created_at >= ?", since)
	}

	var rows []model.Violation
	if err := query.Order("violation_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query violations")
	}

	items := make([]ports.Violation, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapViolation(row))
	}
	return items, nil
}

// MarkViolationResolved transitions open/in_progress -> resolved with a
// conditional update; resolving a resolved violation affects zero rows.
func (r *ComplianceRepository) MarkViolationResolved(ctx context.Context, violationID uint64, resolvedBy string, notes string, resolvedAt string) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	updates := map[string]any{
		"status":          string(compliance.ViolationResolved),
		"resolved_by":     resolvedBy,
		"resolution_date": resolvedAt,
		"updated_at":      resolvedAt,
	}
	if notes != "" {
		updates["resolution_notes"] = notes
	}

	res := db.Model(&model.Violation{}).
		Where("violation_id = ? AND status IN ?", violationID, []string{
			string(compliance.ViolationOpen),
			string(compliance.ViolationInProgress),
		}).
		Updates(updates)
	if res.Error != nil {
		return false, errs.Wrap(res.Error, "resolve violation")
	}
	return res.RowsAffected > 0, nil
}

func mapViolation(row model.Violation) ports.Violation {
	return ports.Violation{
		ViolationID:        row.ViolationID,
		InspectionID:       row.InspectionID,
		EstablishmentID:    row.EstablishmentID,
		Category:           row.Category,
		Severity:           compliance.ViolationSeverity(row.Severity),
		Description:        row.Description,
		Status:             compliance.ViolationStatus(row.Status),
		CorrectiveDeadline: row.CorrectiveDeadline,
		ResolvedBy:         row.ResolvedBy,
		ResolutionNotes:    row.ResolutionNotes,
		ResolutionDate:     row.ResolutionDate,
		ReportedBy:         row.ReportedBy,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
