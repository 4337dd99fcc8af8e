package compliance

import (
	"context"
	"errors"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// CancelInspection transitions pending or in_progress -> cancelled.
// Cancelled is terminal; the row is kept, never deleted.
func (s *Service) CancelInspection(ctx context.Context, input CancelInspectionInput) error {
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

	reference := strings.TrimSpace(input.InspectionRef)
	now := s.nowString()

	return s.uow.WithTx(ctx, func(txCtx context.Context) error {
		inspection, err := s.repo.GetInspectionByReference(txCtx, reference)
		if err != nil {
			return err
		}
		if !inspection.Status.CanTransitionTo(domaincompliance.InspectionCancelled) {
			return domaincompliance.NewTransitionError("inspection", reference,
				string(inspection.Status), string(domaincompliance.InspectionCancelled))
		}

		// Guard on the status we just read; a racing transition makes this
		// affect zero rows.
		ok, err := s.repo.TransitionInspection(txCtx, inspection.InspectionID, inspection.Status, ports.InspectionTransition{
			To:        domaincompliance.InspectionCancelled,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		if !ok {
			current, err := s.repo.GetInspection(txCtx, inspection.InspectionID)
			if err != nil {
				return err
			}
			return domaincompliance.NewTransitionError("inspection", reference,
				string(current.Status), string(domaincompliance.InspectionCancelled))
		}

		return s.appendAuditTx(txCtx, "inspection", reference, "cancelled", actor,
			strings.TrimSpace(input.Reason))
	})
}
