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

// RevokeCertificate transitions valid -> revoked only. A certificate that
// is already revoked, suspended, or past its expiry date cannot be
// revoked. Revocation resynchronizes the establishment's status.
func (s *Service) RevokeCertificate(ctx context.Context, input RevokeCertificateInput) (ports.Certificate, error) {
	if ctx == nil {
		return ports.Certificate{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Certificate{}, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(input.Actor)
	if err != nil {
		return ports.Certificate{}, err
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return ports.Certificate{}, errors.New("revocation reason is required")
	}

	certificateNumber := strings.TrimSpace(input.CertificateNumber)
	now := s.nowString()

	var revoked ports.Certificate
	var establishmentRef string
	var newStatus domaincompliance.ComplianceStatus
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		certificate, err := s.repo.GetCertificateByNumber(txCtx, certificateNumber)
		if err != nil {
			return err
		}

		if derived := s.deriveCertificateStatus(certificate); derived != domaincompliance.CertificateValid {
			return fmt.Errorf("%w: certificate %s is %s",
				domaincompliance.ErrInvalidState, certificateNumber, derived)
		}

		ok, err := s.repo.MarkCertificateRevoked(txCtx, certificate.CertificateID, actor, reason, now)
		if err != nil {
			return err
		}
		if !ok {
			current, err := s.repo.GetCertificate(txCtx, certificate.CertificateID)
			if err != nil {
				return err
			}
			return fmt.Errorf("%w: certificate %s is %s",
				domaincompliance.ErrInvalidState, certificateNumber, current.Status)
		}

		establishment, err := s.repo.GetEstablishment(txCtx, certificate.EstablishmentID)
		if err != nil {
			return err
		}
		establishmentRef = establishment.Reference

		newStatus, err = s.resyncComplianceStatusTx(txCtx, certificate.EstablishmentID)
		if err != nil {
			return err
		}

		if err := s.appendAuditTx(txCtx, "certificate", certificateNumber, "revoked", actor, reason); err != nil {
			return err
		}

		revoked, err = s.repo.GetCertificate(txCtx, certificate.CertificateID)
		return err
	}); err != nil {
		return ports.Certificate{}, err
	}

	s.setCacheBestEffort(ctx, cacheEstablishmentStatusKey(establishmentRef), string(newStatus))
	s.setCacheBestEffort(ctx, cacheCertificateStatusKey(certificateNumber), string(domaincompliance.CertificateRevoked))
	s.publishBestEffort(ctx, "certificate.revoked", "certificate", certificateNumber,
		string(domaincompliance.CertificateRevoked), actor)
	return revoked, nil
}
