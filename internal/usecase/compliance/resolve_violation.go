package compliance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
)

// ResolveViolation closes an open or in_progress violation, stamps the
// resolver, and resynchronizes the establishment's compliance status in
// the same transaction. Resolving a resolved violation fails; it is not
// silently ignored.
func (s *Service) ResolveViolation(ctx context.Context, input ResolveViolationInput) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return err
	}
	if input.ViolationID == 0 {
		return errors.New("violation id is required")
	}

	now := s.nowString()

	var establishmentRef string
	var newStatus domaincompliance.ComplianceStatus
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		violation, err := s.repo.GetViolation(txCtx, input.ViolationID)
		if err != nil {
			return err
		}

		ok, err := s.repo.MarkViolationResolved(txCtx, input.ViolationID, actor, strings.TrimSpace(input.Notes), now)
		if err != nil {
			return err
		}
		if !ok {
			current, err := s.repo.GetViolation(txCtx, input.ViolationID)
			if err != nil {
				return err
			}
			return fmt.Errorf("%w: violation %d is already %s",
				domaincompliance.ErrInvalidState, input.ViolationID, current.Status)
		}

		establishment, err := s.repo.GetEstablishment(txCtx, violation.EstablishmentID)
		if err != nil {
			return err
		}
		establishmentRef = establishment.Reference

		newStatus, err = s.resyncComplianceStatusTx(txCtx, violation.EstablishmentID)
		if err != nil {
			return err
		}

		return s.appendAuditTx(txCtx, "violation", fmt.Sprintf("%d", input.ViolationID), "resolved", actor,
			strings.TrimSpace(input.Notes))
	}); err != nil {
		return err
	}

	s.setCacheBestEffort(ctx, cacheEstablishmentStatusKey(establishmentRef), string(newStatus))
	return nil
}
