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

// ReportViolation records a violation discovered during or after an
// inspection and resynchronizes the establishment's compliance status in
// the same transaction.
func (s *Service) ReportViolation(ctx context.Context, input ReportViolationInput) (ports.Violation, error) {
	if ctx == nil {
		return ports.Violation{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Violation{}, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return ports.Violation{}, err
	}

	severity, err := domaincompliance.ParseViolationSeverity(input.Severity)
	if err != nil {
		return ports.Violation{}, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return ports.Violation{}, errors.New("violation description is required")
	}

	var deadline *string
	if trimmed := strings.TrimSpace(input.CorrectiveDeadline); trimmed != "" {
		parsed, err := parseDate(trimmed)
		if err != nil {
			return ports.Violation{}, err
		}
		deadline = &parsed
	}

	reference := strings.TrimSpace(input.InspectionRef)
	now := s.nowString()

	var created ports.Violation
	var establishmentRef string
	var newStatus domaincompliance.ComplianceStatus
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		inspection, err := s.repo.GetInspectionByReference(txCtx, reference)
		if err != nil {
			return err
		}
		if inspection.Status != domaincompliance.InspectionInProgress &&
			inspection.Status != domaincompliance.InspectionCompleted {
			return fmt.Errorf("%w: inspection %s is %s, violations require an executed inspection",
				domaincompliance.ErrInvalidState, reference, inspection.Status)
		}

		establishment, err := s.repo.GetEstablishment(txCtx, inspection.EstablishmentID)
		if err != nil {
			return err
		}
		establishmentRef = establishment.Reference

		created, err = s.repo.CreateViolation(txCtx, ports.Violation{
			InspectionID:       inspection.InspectionID,
			EstablishmentID:    inspection.EstablishmentID,
			Category:           strings.TrimSpace(input.Category),
			Severity:           severity,
			Description:        description,
			Status:             domaincompliance.ViolationOpen,
			CorrectiveDeadline: deadline,
			ReportedBy:         actor,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			return err
		}

		newStatus, err = s.resyncComplianceStatusTx(txCtx, inspection.EstablishmentID)
		if err != nil {
			return err
		}

		return s.appendAuditTx(txCtx, "violation", fmt.Sprintf("%d", created.ViolationID), "reported", actor,
			string(severity)+" on "+reference)
	}); err != nil {
		return ports.Violation{}, err
	}

	s.setCacheBestEffort(ctx, cacheEstablishmentStatusKey(establishmentRef), string(newStatus))
	s.publishBestEffort(ctx, "violation.reported", "violation",
		fmt.Sprintf("%d", created.ViolationID), string(domaincompliance.ViolationOpen), actor)
	return created, nil
}
