package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/infrastructure/persistence/sqlite/model"
	"inspectra/internal/ports"
)

func (r *ComplianceRepository) CreateInspection(ctx context.Context, inspection ports.Inspection) (ports.Inspection, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Inspection{}, err
	}

	row := model.Inspection{
		Reference:       inspection.Reference,
		EstablishmentID: inspection.EstablishmentID,
		TemplateID:      inspection.TemplateID,
		InspectionType:  inspection.InspectionType,
		InspectorID:     inspection.InspectorID,
		ScheduledDate:   inspection.ScheduledDate,
		Priority:        string(inspection.Priority),
		Status:          string(inspection.Status),
		CreatedAt:       inspection.CreatedAt,
		UpdatedAt:       inspection.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.Inspection{}, fmt.Errorf("%w: inspection reference %s", compliance.ErrConstraintViolation, inspection.Reference)
		}
		return ports.Inspection{}, errs.Wrap(err, "insert inspection")
	}
	return mapInspection(row), nil
}

func (r *ComplianceRepository) GetInspection(ctx context.Context, inspectionID uint64) (ports.Inspection, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Inspection{}, err
	}

	var row model.Inspection
	if err := db.Where("inspection_id = ?", inspectionID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Inspection{}, fmt.Errorf("%w: inspection %d", compliance.ErrNotFound, inspectionID)
		}
		return ports.Inspection{}, errs.Wrap(err, "query inspection")
	}
	return mapInspection(row), nil
}

func (r *ComplianceRepository) GetInspectionByReference(ctx context.Context, reference string) (ports.Inspection, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Inspection{}, err
	}

	var row model.Inspection
	if err := db.Where("reference = ?", reference).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Inspection{}, fmt.Errorf("%w: inspection %s", compliance.ErrNotFound, reference)
		}
		return ports.Inspection{}, errs.Wrap(err, "query inspection by reference")
	}
	return mapInspection(row), nil
}

func (r *ComplianceRepository) ListInspections(ctx context.Context, filter ports.InspectionFilter) ([]ports.Inspection, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Inspection{})
	if filter.EstablishmentID != 0 {
		query = query.Where("establishment_id = ?", filter.EstablishmentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if date := strings.TrimSpace(filter.ScheduledDate); date != "" {
		query = query.Where("scheduled_date = ?", date)
	}

	var rows []model.Inspection
	if err := query.Order("inspection_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query inspections")
	}

	items := make([]ports.Inspection, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapInspection(row))
	}
	return items, nil
}

// TransitionInspection applies a conditional "status = from" update so two
// racing callers cannot both win; the loser sees zero rows affected.
func (r *ComplianceRepository) TransitionInspection(ctx context.Context, inspectionID uint64, from compliance.InspectionStatus, change ports.InspectionTransition) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	updates := map[string]any{
		"status":     string(change.To),
		"updated_at": change.UpdatedAt,
	}
	if change.StartedAt != nil {
		updates["actual_start_datetime"] = *change.StartedAt
	}
	if change.EndedAt != nil {
		updates["actual_end_datetime"] = *change.EndedAt
	}
	if change.OverallRating != nil {
		updates["overall_rating"] = *change.OverallRating
	}
	if change.InspectorNotes != nil {
		updates["inspector_notes"] = *change.InspectorNotes
	}
	if change.ScoreEarned != nil {
		updates["score_earned"] = *change.ScoreEarned
	}
	if change.ScoreTotal != nil {
		updates["score_total"] = *change.ScoreTotal
	}
	if change.ScorePercent != nil {
		updates["score_percent"] = *change.ScorePercent
	}

	res := db.Model(&model.Inspection{}).
		Where("inspection_id = ? AND status = ?", inspectionID, string(from)).
		Updates(updates)
	if res.Error != nil {
		return false, errs.Wrap(res.Error, "transition inspection")
	}
	return res.RowsAffected > 0, nil
}

func (r *ComplianceRepository) UpsertResponse(ctx context.Context, response ports.ChecklistResponse) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.ChecklistResponse{
		InspectionID: response.InspectionID,
		ItemID:       response.ItemID,
		Response:     string(response.Response),
		Notes:        response.Notes,
		Evidence:     response.Evidence,
		RecordedBy:   response.RecordedBy,
		RecordedAt:   response.RecordedAt,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "inspection_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"response":    row.Response,
			"notes":       row.Notes,
			"evidence":    row.Evidence,
			"recorded_by": row.RecordedBy,
			"recorded_at": row.RecordedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "upsert checklist response")
	}
	return nil
}

func (r *ComplianceRepository) ListResponses(ctx context.Context, inspectionID uint64) ([]ports.ChecklistResponse, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ChecklistResponse
	if err := db.
		Where("inspection_id = ?", inspectionID).
		Order("item_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query checklist responses")
	}

	items := make([]ports.ChecklistResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.ChecklistResponse{
			InspectionID: row.InspectionID,
			ItemID:       row.ItemID,
			Response:     compliance.ResponseValue(row.Response),
			Notes:        row.Notes,
			Evidence:     row.Evidence,
			RecordedBy:   row.RecordedBy,
			RecordedAt:   row.RecordedAt,
		})
	}
	return items, nil
}

// ListDispatchCandidates returns the day's pending inspections in insertion
// order, joined with the establishment fields prioritization reads.
func (r *ComplianceRepository) ListDispatchCandidates(ctx context.Context, scheduledDate string) ([]ports.DispatchCandidate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Where("status = ?", string(compliance.InspectionPending))
	if date := strings.TrimSpace(scheduledDate); date != "" {
		query = query.Where("scheduled_date = ?", date)
	}

	var rows []model.Inspection
	if err := query.Order("inspection_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query pending inspections")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.EstablishmentID)
	}

	var establishments []model.Establishment
	if err := db.Where("establishment_id IN ?", ids).Find(&establishments).Error; err != nil {
		return nil, errs.Wrap(err, "query candidate establishments")
	}

	byID := make(map[uint64]model.Establishment, len(establishments))
	for _, est := range establishments {
		byID[est.EstablishmentID] = est
	}

	candidates := make([]ports.DispatchCandidate, 0, len(rows))
	for _, row := range rows {
		est, ok := byID[row.EstablishmentID]
		if !ok {
			return nil, fmt.Errorf("%w: establishment %d for inspection %s", compliance.ErrNotFound, row.EstablishmentID, row.Reference)
		}
		candidates = append(candidates, ports.DispatchCandidate{
			Inspection:       mapInspection(row),
			RiskCategory:     compliance.RiskCategory(est.RiskCategory),
			ComplianceStatus: compliance.ComplianceStatus(est.ComplianceStatus),
		})
	}
	return candidates, nil
}

func mapInspection(row model.Inspection) ports.Inspection {
	return ports.Inspection{
		InspectionID:    row.InspectionID,
		Reference:       row.Reference,
		EstablishmentID: row.EstablishmentID,
		TemplateID:      row.TemplateID,
		InspectionType:  row.InspectionType,
		InspectorID:     row.InspectorID,
		ScheduledDate:   row.ScheduledDate,
		Priority:        compliance.InspectionPriority(row.Priority),
		Status:          compliance.InspectionStatus(row.Status),
		StartedAt:       row.StartedAt,
		EndedAt:         row.EndedAt,
		OverallRating:   row.OverallRating,
		InspectorNotes:  row.InspectorNotes,
		ScoreEarned:     row.ScoreEarned,
		ScoreTotal:      row.ScoreTotal,
		ScorePercent:    row.ScorePercent,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
