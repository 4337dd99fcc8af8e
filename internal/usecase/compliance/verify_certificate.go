package compliance

import (
	"context"
	"errors"
	"strings"
	"time"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

// VerifyCertificate looks up a certificate by number and derives its
// effective status at call time. Expiry is computed from the stored expiry
// date, never written back, so verification needs no background job.
func (s *Service) VerifyCertificate(ctx context.Context, certificateNumber string) (VerificationResult, error) {
	if ctx == nil {
		return VerificationResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return VerificationResult{}, errs.Wrap(err, "check context")
	}

	trimmed := strings.TrimSpace(certificateNumber)
	if trimmed == "" {
		return VerificationResult{}, errors.New("certificate number is required")
	}

	certificate, err := s.repo.GetCertificateByNumber(ctx, trimmed)
	if err != nil {
		return VerificationResult{}, err
	}

	derived := s.deriveCertificateStatus(certificate)
	s.setCacheBestEffort(ctx, cacheCertificateStatusKey(trimmed), string(derived))

	return VerificationResult{
		Certificate:   certificate,
		DerivedStatus: string(derived),
	}, nil
}

// deriveCertificateStatus folds the stored status and the expiry date into
// the status a verifier should see: revoked and suspended win, then
// expired, then expiring_soon inside the policy window, then valid.
func (s *Service) deriveCertificateStatus(certificate ports.Certificate) domaincompliance.CertificateStatus {
	switch certificate.Status {
	case domaincompliance.CertificateRevoked, domaincompliance.CertificateSuspended:
		return certificate.Status
	}

	expiry, err := time.Parse(dateLayout, certificate.ExpiryDate)
	if err != nil {
		// An unparseable expiry date should never verify as valid.
		return domaincompliance.CertificateExpired
	}

	today, err := time.Parse(dateLayout, s.todayString())
	if err != nil {
		return domaincompliance.CertificateExpired
	}

	if today.After(expiry) {
		return domaincompliance.CertificateExpired
	}

	window := time.Duration(s.policy.Certificates.ExpiringSoonDays) * 24 * time.Hour
	if !expiry.After(today.Add(window)) {
		return domaincompliance.CertificateExpiringSoon
	}
	return domaincompliance.CertificateValid
}
