package compliance

import (
	"fmt"
	"strings"
	"time"
)

// ScopeKind identifies an independent reference-number sequence.
type ScopeKind string

const (
	ScopeInspection    ScopeKind = "inspection"
	ScopeEstablishment ScopeKind = "establishment"
	ScopeCertificate   ScopeKind = "certificate"
)

type scopeFormat struct {
	prefix  string
	monthly bool
	digits  int
}

var scopeFormats = map[ScopeKind]scopeFormat{
	ScopeInspection:    {prefix: "HSI", monthly: true, digits: 4},
	ScopeEstablishment: {prefix: "EST", monthly: false, digits: 5},
	ScopeCertificate:   {prefix: "CERT", monthly: false, digits: 6},
}

// PeriodKey returns the sequence period for a scope at the given time:
// year-month for inspections, year for establishments and certificates.
// Periods never reset mid-way and are never reused.
func PeriodKey(kind ScopeKind, at time.Time) (string, error) {
	format, ok := scopeFormats[kind]
	if !ok {
		return "", fmt.Errorf("%w: sequence scope %q", ErrInvalidValue, kind)
	}

	if format.monthly {
		return at.UTC().Format("2006-01"), nil
	}
	return at.UTC().Format("2006"), nil
}

// FormatReference renders a human-readable reference such as
// HSI-2025-06-0007 or CERT-2025-000123.
func FormatReference(kind ScopeKind, period string, seq uint64) (string, error) {
	format, ok := scopeFormats[kind]
	if !ok {
		return "", fmt.Errorf("%w: sequence scope %q", ErrInvalidValue, kind)
	}
	if strings.TrimSpace(period) == "" {
		return "", fmt.Errorf("%w: empty period for scope %q", ErrInvalidValue, kind)
	}

	return fmt.Sprintf("%s-%s-%0*d", format.prefix, period, format.digits, seq), nil
}

// MaxSequence is the largest value the scope's zero-padded suffix can hold.
func MaxSequence(kind ScopeKind) uint64 {
	format, ok := scopeFormats[kind]
	if !ok {
		return 0
	}

	max := uint64(1)
	for i := 0; i < format.digits; i++ {
		max *= 10
	}
	return max - 1
}
