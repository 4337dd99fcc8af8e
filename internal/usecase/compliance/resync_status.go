package compliance

import (
	"context"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/ports"
)

// resyncComplianceStatusTx recomputes an establishment's compliance status
// from its open violations. It is the single writer of compliance_status
// and runs in the same transaction as the mutation that triggered it, so
// readers never observe a stale status after commit. Idempotent.
func (s *Service) resyncComplianceStatusTx(txCtx context.Context, establishmentID uint64) (domaincompliance.ComplianceStatus, error) {
	open, err := s.repo.ListViolations(txCtx, ports.ViolationFilter{
		EstablishmentID: establishmentID,
		OpenOnly:        true,
	})
	if err != nil {
		return "", err
	}

	status := domaincompliance.ComplianceCompliant
	for _, violation := range open {
		if s.policy.ForcesNonCompliance(violation.Severity) {
			status = domaincompliance.ComplianceNonCompliant
			break
		}
	}

	if err := s.repo.SetComplianceStatus(txCtx, establishmentID, status, s.nowString()); err != nil {
		return "", err
	}
	return status, nil
}
