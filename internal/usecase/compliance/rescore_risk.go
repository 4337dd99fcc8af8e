package compliance

import (
	"context"
	"errors"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// RescoreRisk rebuilds an establishment's violation and inspection history,
// runs it through the configured risk scorer, and persists the resulting
// category. The rationale is recorded on the audit trail so a later reader
// can see why the category changed.
func (s *Service) RescoreRisk(ctx context.Context, input RescoreRiskInput) (domaincompliance.RiskAssessment, error) {
	if ctx == nil {
		return domaincompliance.RiskAssessment{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return domaincompliance.RiskAssessment{}, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return domaincompliance.RiskAssessment{}, err
	}

	reference := strings.TrimSpace(input.EstablishmentRef)
	now := s.nowString()

	var assessment domaincompliance.RiskAssessment
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		establishment, err := s.repo.GetEstablishmentByReference(txCtx, reference)
		if err != nil {
			return err
		}

		history, err := s.buildHistoryTx(txCtx, establishment.EstablishmentID)
		if err != nil {
			return err
		}

		assessment = s.riskScorer.ScoreRisk(history)
		if assessment.Category != establishment.RiskCategory {
			if err := s.repo.SetRiskCategory(txCtx, establishment.EstablishmentID, assessment.Category, now); err != nil {
				return err
			}
		}

		return s.appendAuditTx(txCtx, "establishment", reference, "risk_rescored", actor, assessment.Rationale)
	}); err != nil {
		return domaincompliance.RiskAssessment{}, err
	}
	return assessment, nil
}

// buildHistoryTx assembles the scorer's evidence: open violations by
// severity, resolutions in the trailing year, and the latest completed
// inspection score.
func (s *Service) buildHistoryTx(txCtx context.Context, establishmentID uint64) (domaincompliance.EstablishmentHistory, error) {
	var history domaincompliance.EstablishmentHistory

	open, err := s.repo.ListViolations(txCtx, ports.ViolationFilter{
		EstablishmentID: establishmentID,
		OpenOnly:        true,
	})
	if err != nil {
		return history, err
	}
	for _, violation := range open {
		switch violation.Severity {
		case domaincompliance.SeverityCritical:
			history.OpenCritical++
		case domaincompliance.SeverityMajor:
			history.OpenMajor++
		case domaincompliance.SeverityMinor:
			history.OpenMinor++
		}
	}

	yearAgo := s.nowUTC().AddDate(-1, 0, 0).Format(dateLayout)
	recent, err := s.repo.ListViolations(txCtx, ports.ViolationFilter{
		EstablishmentID: establishmentID,
		Since:           yearAgo,
	})
	if err != nil {
		return history, err
	}
	for _, violation := range recent {
		if violation.Status == domaincompliance.ViolationResolved {
			history.ResolvedLastYear++
		}
	}

	completed, err := s.repo.ListInspections(txCtx, ports.InspectionFilter{
		EstablishmentID: establishmentID,
		Status:          domaincompliance.InspectionCompleted,
	})
	if err != nil {
		return history, err
	}
	var latestEnd string
	for _, inspection := range completed {
		if inspection.EndedAt != nil && *inspection.EndedAt >= yearAgo {
			history.CompletedLastYear++
		}
		if inspection.ScorePercent == nil {
			continue
		}
		endedAt := derefString(inspection.EndedAt)
		if !history.HasCompletedScore || endedAt > latestEnd {
			history.HasCompletedScore = true
			history.LastScorePercent = *inspection.ScorePercent
			latestEnd = endedAt
		}
	}
	return history, nil
}
