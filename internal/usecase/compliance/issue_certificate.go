package compliance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// IssueCertificate issues a certificate for a completed inspection. The
// duplicate check is an explicit lookup inside the transaction, with the
// unique index on inspection_id as the backstop under races. Issuance
// resynchronizes the establishment's status but never overrides it: an
// open critical violation still leaves the establishment non_compliant.
func (s *Service) IssueCertificate(ctx context.Context, input IssueCertificateInput) (ports.Certificate, error) {
	if ctx == nil {
		return ports.Certificate{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Certificate{}, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return ports.Certificate{}, err
	}
	if input.ValidityMonths <= 0 {
		return ports.Certificate{}, errors.New("validity months must be positive")
	}
	certificateType := strings.TrimSpace(input.CertificateType)
	if certificateType == "" {
		return ports.Certificate{}, errors.New("certificate type is required")
	}

	reference := strings.TrimSpace(input.InspectionRef)
	now := s.nowString()
	issueDate := s.todayString()
	expiryDate := s.nowUTC().AddDate(0, input.ValidityMonths, 0).Format(dateLayout)

	var issued ports.Certificate
	var establishmentRef string
	var newStatus domaincompliance.ComplianceStatus
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		inspection, err := s.repo.GetInspectionByReference(txCtx, reference)
		if err != nil {
			return err
		}
		if inspection.Status != domaincompliance.InspectionCompleted {
			return fmt.Errorf("%w: inspection %s is %s, certificates require completed",
				domaincompliance.ErrInvalidState, reference, inspection.Status)
		}

		if existing, err := s.repo.GetCertificateByInspection(txCtx, inspection.InspectionID); err == nil {
			return fmt.Errorf("%w: inspection %s already has certificate %s",
				domaincompliance.ErrConstraintViolation, reference, existing.CertificateNumber)
		} else if !errors.Is(err, domaincompliance.ErrNotFound) {
			return err
		}

		establishment, err := s.repo.GetEstablishment(txCtx, inspection.EstablishmentID)
		if err != nil {
			return err
		}
		establishmentRef = establishment.Reference

		certificateNumber, err := s.allocateReferenceTx(txCtx, domaincompliance.ScopeCertificate, s.certificateNumberTaken)
		if err != nil {
			return err
		}

		issued, err = s.repo.CreateCertificate(txCtx, ports.Certificate{
			CertificateNumber: certificateNumber,
			EstablishmentID:   inspection.EstablishmentID,
			InspectionID:      inspection.InspectionID,
			CertificateType:   certificateType,
			IssueDate:         issueDate,
			ExpiryDate:        expiryDate,
			Status:            domaincompliance.CertificateValid,
			Remarks:           strings.TrimSpace(input.Remarks),
			IssuedBy:          actor,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return err
		}

		newStatus, err = s.resyncComplianceStatusTx(txCtx, inspection.EstablishmentID)
		if err != nil {
			return err
		}

		return s.appendAuditTx(txCtx, "certificate", certificateNumber, "issued", actor,
			"inspection "+reference+", expires "+expiryDate)
	}); err != nil {
		return ports.Certificate{}, err
	}

	s.setCacheBestEffort(ctx, cacheEstablishmentStatusKey(establishmentRef), string(newStatus))
	s.setCacheBestEffort(ctx, cacheCertificateStatusKey(issued.CertificateNumber), string(domaincompliance.CertificateValid))
	s.publishBestEffort(ctx, "certificate.issued", "certificate", issued.CertificateNumber,
		string(domaincompliance.CertificateValid), actor)
	return issued, nil
}

func (s *Service) certificateNumberTaken(ctx context.Context, certificateNumber string) (bool, error) {
	_, err := s.repo.GetCertificateByNumber(ctx, certificateNumber)
	if err != nil {
		if errors.Is(err, domaincompliance.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
