package compliance

import (
	"context"
	"errors"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// StartInspection transitions pending -> in_progress and stamps the actual
// start time. The transition is guarded in the store, so a concurrent
// second start observes zero rows affected and fails.
func (s *Service) StartInspection(ctx context.Context, input StartInspectionInput) (ports.Inspection, error) {
	if ctx == nil {
		return ports.Inspection{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Inspection{}, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return ports.Inspection{}, err
	}

	reference := strings.TrimSpace(input.InspectionRef)
	now := s.nowString()

	var started ports.Inspection
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		inspection, err := s.repo.GetInspectionByReference(txCtx, reference)
		if err != nil {
			return err
		}

		ok, err := s.repo.TransitionInspection(txCtx, inspection.InspectionID, domaincompliance.InspectionPending, ports.InspectionTransition{
			To:        domaincompliance.InspectionInProgress,
			StartedAt: strPtr(now),
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
				string(current.Status), string(domaincompliance.InspectionInProgress))
		}

		if err := s.appendAuditTx(txCtx, "inspection", reference, "started", actor, ""); err != nil {
			return err
		}

		started, err = s.repo.GetInspection(txCtx, inspection.InspectionID)
		return err
	}); err != nil {
		return ports.Inspection{}, err
	}

	return started, nil
}
