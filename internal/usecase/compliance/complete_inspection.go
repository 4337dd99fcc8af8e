package compliance

import (
	"context"
	"errors"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// CompleteInspection transitions in_progress -> completed, scores the
// recorded responses against the pinned template version, and stamps the
// end time. Completion never issues a certificate; that is a separate,
// explicit operation with completion as its precondition.
func (s *Service) CompleteInspection(ctx context.Context, input CompleteInspectionInput) (InspectionDetail, error) {
	if ctx == nil {
		return InspectionDetail{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return InspectionDetail{}, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return InspectionDetail{}, err
	}

	reference := strings.TrimSpace(input.InspectionRef)
	now := s.nowString()

	var detail InspectionDetail
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		inspection, err := s.repo.GetInspectionByReference(txCtx, reference)
		if err != nil {
			return err
		}

		responses, err := s.repo.ListResponses(txCtx, inspection.InspectionID)
		if err != nil {
			return err
		}
		items, err := s.repo.ListTemplateItems(txCtx, inspection.TemplateID)
		if err != nil {
			return err
		}

		answered := make(map[uint64]domaincompliance.ResponseValue, len(responses))
		for _, response := range responses {
			answered[response.ItemID] = response.Response
		}
		scored := make([]domaincompliance.ScoredItem, 0, len(items))
		for _, item := range items {
			scored = append(scored, domaincompliance.ScoredItem{ItemID: item.ItemID, Points: item.Points})
		}
		score := domaincompliance.Score(answered, scored, s.policy.Thresholds())

		rating := strings.TrimSpace(input.OverallRating)
		if rating == "" {
			rating = string(score.Rating)
		}

		change := ports.InspectionTransition{
			To:            domaincompliance.InspectionCompleted,
			EndedAt:       strPtr(now),
			OverallRating: strPtr(rating),
			ScoreEarned:   &score.EarnedPoints,
			ScoreTotal:    &score.TotalPoints,
			ScorePercent:  &score.Percentage,
			UpdatedAt:     now,
		}
		if notes := strings.TrimSpace(input.Notes); notes != "" {
			change.InspectorNotes = strPtr(notes)
		}

		ok, err := s.repo.TransitionInspection(txCtx, inspection.InspectionID, domaincompliance.InspectionInProgress, change)
		if err != nil {
			return err
		}
		if !ok {
			current, err := s.repo.GetInspection(txCtx, inspection.InspectionID)
			if err != nil {
				return err
			}
			return domaincompliance.NewTransitionError("inspection", reference,
				string(current.Status), string(domaincompliance.InspectionCompleted))
		}

		if err := s.appendAuditTx(txCtx, "inspection", reference, "completed", actor,
			string(score.Rating)+" "+formatPercent(score.Percentage)); err != nil {
			return err
		}

		updated, err := s.repo.GetInspection(txCtx, inspection.InspectionID)
		if err != nil {
			return err
		}
		detail = InspectionDetail{
			Inspection: updated,
			Responses:  responses,
			Score:      &score,
		}
		return nil
	}); err != nil {
		return InspectionDetail{}, err
	}

	s.publishBestEffort(ctx, "inspection.completed", "inspection", reference,
		string(domaincompliance.InspectionCompleted), actor)
	return detail, nil
}
