package compliance

import (
	"context"
	"errors"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// ScheduleInspection creates a pending inspection with a generated HSI
// reference, pinned to the checklist template version active right now so
// later template edits cannot change how this inspection scores.
func (s *Service) ScheduleInspection(ctx context.Context, input ScheduleInspectionInput) (ports.Inspection, error) {
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

	priority, err := domaincompliance.ParseInspectionPriority(input.Priority)
	if err != nil {
		return ports.Inspection{}, err
	}

	scheduledDate, err := parseDate(input.ScheduledDate)
	if err != nil {
		return ports.Inspection{}, err
	}

	inspectionType := strings.TrimSpace(input.InspectionType)
	if inspectionType == "" {
		return ports.Inspection{}, errors.New("inspection type is required")
	}

	var inspectorID *string
	if trimmed := strings.TrimSpace(input.InspectorID); trimmed != "" {
		inspectorID = &trimmed
	}

	now := s.nowString()

	var created ports.Inspection
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		establishment, err := s.repo.GetEstablishmentByReference(txCtx, strings.TrimSpace(input.EstablishmentRef))
		if err != nil {
			return err
		}

		template, err := s.repo.GetActiveTemplate(txCtx, inspectionType)
		if err != nil {
			return err
		}

		reference, err := s.allocateReferenceTx(txCtx, domaincompliance.ScopeInspection, s.inspectionReferenceTaken)
		if err != nil {
			return err
		}

		created, err = s.repo.CreateInspection(txCtx, ports.Inspection{
			Reference:       reference,
			EstablishmentID: establishment.EstablishmentID,
			TemplateID:      template.TemplateID,
			InspectionType:  inspectionType,
			InspectorID:     inspectorID,
			ScheduledDate:   scheduledDate,
			Priority:        priority,
			Status:          domaincompliance.InspectionPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}

		return s.appendAuditTx(txCtx, "inspection", reference, "scheduled", actor,
			"establishment "+establishment.Reference+", date "+scheduledDate)
	}); err != nil {
		return ports.Inspection{}, err
	}

	return created, nil
}

func (s *Service) inspectionReferenceTaken(ctx context.Context, reference string) (bool, error) {
	_, err := s.repo.GetInspectionByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domaincompliance.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
