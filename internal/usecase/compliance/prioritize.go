package compliance

import (
	"context"
	"errors"
	"sort"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
)

// Prioritize returns the day's pending inspections ordered for dispatch:
// by rank, then by scheduled date, preserving creation order within ties.
// When date is empty every pending inspection is considered.
func (s *Service) Prioritize(ctx context.Context, date string) ([]DispatchItem, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	if date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	candidates, err := s.repo.ListDispatchCandidates(ctx, date)
	if err != nil {
		return nil, err
	}

	items := make([]DispatchItem, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, DispatchItem{
			Inspection:       candidate.Inspection,
			Rank:             domaincompliance.DispatchRank(candidate.RiskCategory, candidate.Inspection.Priority, candidate.ComplianceStatus),
			RiskCategory:     candidate.RiskCategory,
			ComplianceStatus: candidate.ComplianceStatus,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rank != items[j].Rank {
			return items[i].Rank < items[j].Rank
		}
		return items[i].Inspection.ScheduledDate < items[j].Inspection.ScheduledDate
	})
	return items, nil
}
