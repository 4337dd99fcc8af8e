package compliance

import (
	"context"
	"errors"
	"strings"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// RegisterEstablishment creates an establishment with a generated EST
// reference, an initial risk category from the risk scorer, and a pending
// compliance status until the first resync.
func (s *Service) RegisterEstablishment(ctx context.Context, input RegisterEstablishmentInput) (ports.Establishment, error) {
	if ctx == nil {
		return ports.Establishment{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Establishment{}, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return ports.Establishment{}, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ports.Establishment{}, errors.New("establishment name is required")
	}
	establishmentType := strings.TrimSpace(input.EstablishmentType)
	if establishmentType == "" {
		return ports.Establishment{}, errors.New("establishment type is required")
	}

	assessment := s.riskScorer.ScoreRisk(domaincompliance.EstablishmentHistory{})
	now := s.nowString()

	var created ports.Establishment
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		reference, err := s.allocateReferenceTx(txCtx, domaincompliance.ScopeEstablishment, s.establishmentReferenceTaken)
		if err != nil {
			return err
		}

		created, err = s.repo.CreateEstablishment(txCtx, ports.Establishment{
			Reference:         reference,
			Name:              name,
			EstablishmentType: establishmentType,
			OwnerName:         strings.TrimSpace(input.OwnerName),
			Address:           strings.TrimSpace(input.Address),
			RiskCategory:      assessment.Category,
			ComplianceStatus:  domaincompliance.CompliancePending,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return err
		}

		return s.appendAuditTx(txCtx, "establishment", reference, "registered", actor, assessment.Rationale)
	}); err != nil {
		return ports.Establishment{}, err
	}

	s.setCacheBestEffort(ctx, cacheEstablishmentStatusKey(created.Reference), string(created.ComplianceStatus))
	return created, nil
}

func (s *Service) establishmentReferenceTaken(ctx context.Context, reference string) (bool, error) {
	_, err := s.repo.GetEstablishmentByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domaincompliance.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
