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

func (r *ComplianceRepository) CreateCertificate(ctx context.Context, certificate ports.Certificate) (ports.Certificate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Certificate{}, err
	}

	row := model.Certificate{
		CertificateNumber: certificate.CertificateNumber,
		EstablishmentID:   certificate.EstablishmentID,
		InspectionID:      certificate.InspectionID,
		CertificateType:   certificate.CertificateType,
		IssueDate:         certificate.IssueDate,
		ExpiryDate:        certificate.ExpiryDate,
		Status:            string(certificate.Status),
		Remarks:           certificate.Remarks,
		IssuedBy:          certificate.IssuedBy,
		CreatedAt:         certificate.CreatedAt,
		UpdatedAt:         certificate.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		// Unique index on inspection_id backs the one-certificate-per-
		// inspection invariant even under concurrent issuance.
		if isUniqueViolation(err) {
			return ports.Certificate{}, fmt.Errorf("%w: certificate for inspection %d", compliance.ErrConstraintViolation, certificate.InspectionID)
		}
		return ports.Certificate{}, errs.Wrap(err, "insert certificate")
	}
	return mapCertificate(row), nil
}

func (r *ComplianceRepository) GetCertificate(ctx context.Context, certificateID uint64) (ports.Certificate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Certificate{}, err
	}

	var row model.Certificate
	if err := db.Where("certificate_id = ?", certificateID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Certificate{}, fmt.Errorf("%w: certificate %d", compliance.ErrNotFound, certificateID)
		}
		return ports.Certificate{}, errs.Wrap(err, "query certificate")
	}
	return mapCertificate(row), nil
}

func (r *ComplianceRepository) GetCertificateByNumber(ctx context.Context, certificateNumber string) (ports.Certificate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Certificate{}, err
	}

	var row model.Certificate
	if err := db.Where("certificate_number = ?", certificateNumber).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Certificate{}, fmt.Errorf("%w: certificate %s", compliance.ErrNotFound, certificateNumber)
		}
		return ports.Certificate{}, errs.Wrap(err, "query certificate by number")
	}
	return mapCertificate(row), nil
}

func (r *ComplianceRepository) GetCertificateByInspection(ctx context.Context, inspectionID uint64) (ports.Certificate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Certificate{}, err
	}

	var row model.Certificate
	if err := db.Where("inspection_id = ?", inspectionID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Certificate{}, fmt.Errorf("%w: certificate for inspection %d", compliance.ErrNotFound, inspectionID)
		}
		return ports.Certificate{}, errs.Wrap(err, "query certificate by inspection")
	}
	return mapCertificate(row), nil
}

func (r *ComplianceRepository) ListCertificates(ctx context.Context, establishmentID uint64) ([]ports.Certificate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Certificate{})
	if establishmentID != 0 {
		query = query.Where("establishment_id = ?", establishmentID)
	}

	var rows []model.Certificate
	if err := query.Order("certificate_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query certificates")
	}

	items := make([]ports.Certificate, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapCertificate(row))
	}
	return items, nil
}

// MarkCertificateRevoked transitions valid -> revoked with a conditional
// update; a revoked or suspended certificate affects zero rows.
func (r *ComplianceRepository) MarkCertificateRevoked(ctx context.Context, certificateID uint64, revokedBy string, reason string, revokedAt string) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	res := db.Model(&model.Certificate{}).
		Where("certificate_id = ? AND status = ?", certificateID, string(compliance.CertificateValid)).
		Updates(map[string]any{
			"status":            string(compliance.CertificateRevoked),
			"revoked_by":        revokedBy,
			"revoked_at":        revokedAt,
			"revocation_reason": reason,
			"updated_at":        revokedAt,
		})
	if res.Error != nil {
		return false, errs.Wrap(res.Error, "revoke certificate")
	}
	return res.RowsAffected > 0, nil
}

func mapCertificate(row model.Certificate) ports.Certificate {
	return ports.Certificate{
		CertificateID:     row.CertificateID,
		CertificateNumber: row.CertificateNumber,
		EstablishmentID:   row.EstablishmentID,
		InspectionID:      row.InspectionID,
		CertificateType:   row.CertificateType,
		IssueDate:         row.IssueDate,
		ExpiryDate:        row.ExpiryDate,
		Status:            compliance.CertificateStatus(row.Status),
		Remarks:           row.Remarks,
		IssuedBy:          row.IssuedBy,
		RevokedBy:         row.RevokedBy,
		RevokedAt:         row.RevokedAt,
		RevocationReason:  row.RevocationReason,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
