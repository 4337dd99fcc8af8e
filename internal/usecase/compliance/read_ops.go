package compliance

import (
	"context"
	"errors"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// GetEstablishment returns an establishment by reference.
func (s *Service) GetEstablishment(ctx context.Context, reference string) (ports.Establishment, error) {
	if ctx == nil {
		return ports.Establishment{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Establishment{}, errs.Wrap(err, "check context")
	}
	return s.repo.GetEstablishmentByReference(ctx, strings.TrimSpace(reference))
}

// GetInspectionDetail returns an inspection with its recorded responses.
// The score block is populated from the stored completion fields; an
// inspection that has not completed has no score yet.
func (s *Service) GetInspectionDetail(ctx context.Context, reference string) (InspectionDetail, error) {
	if ctx == nil {
		return InspectionDetail{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return InspectionDetail{}, errs.Wrap(err, "check context")
	}

	inspection, err := s.repo.GetInspectionByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return InspectionDetail{}, err
	}
	responses, err := s.repo.ListResponses(ctx, inspection.InspectionID)
	if err != nil {
		return InspectionDetail{}, err
	}

	detail := InspectionDetail{Inspection: inspection, Responses: responses}
	if inspection.ScoreEarned != nil && inspection.ScoreTotal != nil && inspection.ScorePercent != nil {
		detail.Score = &domaincompliance.ScoreResult{
			EarnedPoints: *inspection.ScoreEarned,
			TotalPoints:  *inspection.ScoreTotal,
			Percentage:   *inspection.ScorePercent,
			Rating:       domaincompliance.Rating(derefString(inspection.OverallRating)),
		}
	}
	return detail, nil
}

// ListInspections returns inspections for an establishment, optionally
// narrowed by status.
func (s *Service) ListInspections(ctx context.Context, establishmentRef string, status string) ([]ports.Inspection, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	establishment, err := s.repo.GetEstablishmentByReference(ctx, strings.TrimSpace(establishmentRef))
	if err != nil {
		return nil, err
	}

	filter := ports.InspectionFilter{EstablishmentID: establishment.EstablishmentID}
	if trimmed := strings.TrimSpace(status); trimmed != "" {
		filter.Status = domaincompliance.InspectionStatus(strings.ToLower(trimmed))
	}
	return s.repo.ListInspections(ctx, filter)
}

// ListViolations returns an establishment's violations, optionally only
// the ones still open.
func (s *Service) ListViolations(ctx context.Context, establishmentRef string, openOnly bool) ([]ports.Violation, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	establishment, err := s.repo.GetEstablishmentByReference(ctx, strings.TrimSpace(establishmentRef))
	if err != nil {
		return nil, err
	}
	return s.repo.ListViolations(ctx, ports.ViolationFilter{
		EstablishmentID: establishment.EstablishmentID,
		OpenOnly:        openOnly,
	})
}

// ListCertificates returns every certificate issued to an establishment.
func (s *Service) ListCertificates(ctx context.Context, establishmentRef string) ([]ports.Certificate, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	establishment, err := s.repo.GetEstablishmentByReference(ctx, strings.TrimSpace(establishmentRef))
	if err != nil {
		return nil, err
	}
	return s.repo.ListCertificates(ctx, establishment.EstablishmentID)
}

// History returns the audit trail for one entity, newest first.
func (s *Service) History(ctx context.Context, entityKind string, entityRef string, limit int) ([]ports.AuditEntry, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	kind := strings.TrimSpace(entityKind)
	ref := strings.TrimSpace(entityRef)
	if kind == "" || ref == "" {
		return nil, errors.New("entity kind and reference are required")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListAudit(ctx, kind, ref, limit)
}
