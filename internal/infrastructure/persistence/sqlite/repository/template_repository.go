package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/infrastructure/persistence/sqlite/model"
	"inspectra/internal/ports"
)

func (r *ComplianceRepository) CreateTemplateVersion(ctx context.Context, template ports.ChecklistTemplate, items []ports.ChecklistItem) (ports.ChecklistTemplate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.ChecklistTemplate{}, err
	}

	row := model.ChecklistTemplate{
		Code:           template.Code,
		InspectionType: template.InspectionType,
		Version:        template.Version,
		Status:         template.Status,
		CreatedAt:      template.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ChecklistTemplate{}, fmt.Errorf("%w: template %s version %d", compliance.ErrConstraintViolation, template.Code, template.Version)
		}
		return ports.ChecklistTemplate{}, errs.Wrap(err, "insert checklist template")
	}

	for i, item := range items {
		itemRow := model.ChecklistItem{
			TemplateID:  row.TemplateID,
			Category:    item.Category,
			Requirement: item.Requirement,
			Mandatory:   item.Mandatory,
			Points:      item.Points,
			SortOrder:   item.SortOrder,
		}
		if itemRow.SortOrder == 0 {
			itemRow.SortOrder = i + 1
		}
		if err := db.Create(&itemRow).Error; err != nil {
			return ports.ChecklistTemplate{}, errs.Wrap(err, "insert checklist item")
		}
	}

	return mapTemplate(row), nil
}

func (r *ComplianceRepository) GetTemplate(ctx context.Context, templateID uint64) (ports.ChecklistTemplate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.ChecklistTemplate{}, err
	}

	var row model.ChecklistTemplate
	if err := db.Where("template_id = ?", templateID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ChecklistTemplate{}, fmt.Errorf("%w: checklist template %d", compliance.ErrNotFound, templateID)
		}
		return ports.ChecklistTemplate{}, errs.Wrap(err, "query checklist template")
	}
	return mapTemplate(row), nil
}

func (r *ComplianceRepository) GetActiveTemplate(ctx context.Context, inspectionType string) (ports.ChecklistTemplate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.ChecklistTemplate{}, err
	}

	var row model.ChecklistTemplate
	if err := db.
		Where("inspection_type = ? AND status = ?", inspectionType, "active").
		Order("version desc").
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ChecklistTemplate{}, fmt.Errorf("%w: active template for inspection type %s", compliance.ErrNotFound, inspectionType)
		}
		return ports.ChecklistTemplate{}, errs.Wrap(err, "query active template")
	}
	return mapTemplate(row), nil
}

func (r *ComplianceRepository) ListTemplateItems(ctx context.Context, templateID uint64) ([]ports.ChecklistItem, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ChecklistItem
	if err := db.
		Where("template_id = ?", templateID).
		Order("sort_order asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query checklist items")
	}

	items := make([]ports.ChecklistItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.ChecklistItem{
			ItemID:      row.ItemID,
			TemplateID:  row.TemplateID,
			Category:    row.Category,
			Requirement: row.Requirement,
			Mandatory:   row.Mandatory,
			Points:      row.Points,
			SortOrder:   row.SortOrder,
		})
	}
	return items, nil
}

func (r *ComplianceRepository) ArchiveTemplate(ctx context.Context, templateID uint64) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.ChecklistTemplate{}).
		Where("template_id = ?", templateID).
		Update("status", "archived")
	if res.Error != nil {
		return errs.Wrap(res.Error, "archive checklist template")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: checklist template %d", compliance.ErrNotFound, templateID)
	}
	return nil
}

func mapTemplate(row model.ChecklistTemplate) ports.ChecklistTemplate {
	return ports.ChecklistTemplate{
		TemplateID:     row.TemplateID,
		Code:           row.Code,
		InspectionType: row.InspectionType,
		Version:        row.Version,
		Status:         row.Status,
		CreatedAt:      row.CreatedAt,
	}
}
