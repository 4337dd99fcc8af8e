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

func (r *ComplianceRepository) CreateEstablishment(ctx context.Context, establishment ports.Establishment) (ports.Establishment, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Establishment{}, err
	}

	row := model.Establishment{
		Reference:         establishment.Reference,
		Name:              establishment.Name,
		EstablishmentType: establishment.EstablishmentType,
		OwnerName:         establishment.OwnerName,
		Address:           establishment.Address,
		RiskCategory:      string(establishment.RiskCategory),
		ComplianceStatus:  string(establishment.ComplianceStatus),
		CreatedAt:         establishment.CreatedAt,
		UpdatedAt:         establishment.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.Establishment{}, fmt.Errorf("%w: establishment reference %s", compliance.ErrConstraintViolation, establishment.Reference)
		}
		return ports.Establishment{}, errs.Wrap(err, "insert establishment")
	}

	return mapEstablishment(row), nil
}

func (r *ComplianceRepository) GetEstablishment(ctx context.Context, establishmentID uint64) (ports.Establishment, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Establishment{}, err
	}

	var row model.Establishment
	if err := db.Where("establishment_id = ?", establishmentID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Establishment{}, fmt.Errorf("%w: establishment %d", compliance.ErrNotFound, establishmentID)
		}
		return ports.Establishment{}, errs.Wrap(err, "query establishment")
	}
	return mapEstablishment(row), nil
}

func (r *ComplianceRepository) GetEstablishmentByReference(ctx context.Context, reference string) (ports.Establishment, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Establishment{}, err
	}

	var row model.Establishment
	if err := db.Where("reference = ?", reference).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Establishment{}, fmt.Errorf("%w: establishment %s", compliance.ErrNotFound, reference)
		}
		return ports.Establishment{}, errs.Wrap(err, "query establishment by reference")
	}
	return mapEstablishment(row), nil
}

func (r *ComplianceRepository) SetComplianceStatus(ctx context.Context, establishmentID uint64, status compliance.ComplianceStatus, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.Establishment{}).
		Where("establishment_id = ?", establishmentID).
		Updates(map[string]any{
			"compliance_status": string(status),
			"updated_at":        updatedAt,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update compliance status")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: establishment %d", compliance.ErrNotFound, establishmentID)
	}
	return nil
}

func (r *ComplianceRepository) SetRiskCategory(ctx context.Context, establishmentID uint64, category compliance.RiskCategory, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.Establishment{}).
		Where("establishment_id = ?", establishmentID).
		Updates(map[string]any{
			"risk_category": string(category),
			"updated_at":    updatedAt,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update risk category")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: establishment %d", compliance.ErrNotFound, establishmentID)
	}
	return nil
}

func mapEstablishment(row model.Establishment) ports.Establishment {
	return ports.Establishment{
		EstablishmentID:   row.EstablishmentID,
		Reference:         row.Reference,
		Name:              row.Name,
		EstablishmentType: row.EstablishmentType,
		OwnerName:         row.OwnerName,
		Address:           row.Address,
		RiskCategory:      compliance.RiskCategory(row.RiskCategory),
		ComplianceStatus:  compliance.ComplianceStatus(row.ComplianceStatus),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
