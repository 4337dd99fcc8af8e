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

// RecordResponses upserts checklist answers for an in-progress inspection.
// Re-submitting an item overwrites the earlier answer; it never duplicates.
// A pending inspection must be started explicitly first.
func (s *Service) RecordResponses(ctx context.Context, input RecordResponsesInput) error {
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
	if len(input.Responses) == 0 {
		return errors.New("at least one response is required")
	}

	reference := strings.TrimSpace(input.InspectionRef)
	now := s.nowString()

	return s.uow.WithTx(ctx, func(txCtx context.Context) error {
		inspection, err := s.repo.GetInspectionByReference(txCtx, reference)
		if err != nil {
			return err
		}
		if inspection.Status != domaincompliance.InspectionInProgress {
			return fmt.Errorf("%w: inspection %s is %s, responses require in_progress",
				domaincompliance.ErrInvalidTransition, reference, inspection.Status)
		}

		items, err := s.repo.ListTemplateItems(txCtx, inspection.TemplateID)
		if err != nil {
			return err
		}
		knownItems := make(map[uint64]struct{}, len(items))
		for _, item := range items {
			knownItems[item.ItemID] = struct{}{}
		}

		for _, response := range input.Responses {
			value, err := domaincompliance.ParseResponseValue(response.Response)
			if err != nil {
				return err
			}
			if _, ok := knownItems[response.ItemID]; !ok {
				return fmt.Errorf("%w: checklist item %d on inspection %s",
					domaincompliance.ErrNotFound, response.ItemID, reference)
			}

			if err := s.repo.UpsertResponse(txCtx, ports.ChecklistResponse{
				InspectionID: inspection.InspectionID,
				ItemID:       response.ItemID,
				Response:     value,
				Notes:        strings.TrimSpace(response.Notes),
				Evidence:     strings.TrimSpace(response.Evidence),
				RecordedBy:   actor,
				RecordedAt:   now,
			}); err != nil {
				return err
			}
		}

		return s.appendAuditTx(txCtx, "inspection", reference, "responses_recorded", actor,
			fmt.Sprintf("%d item(s)", len(input.Responses)))
	})
}
