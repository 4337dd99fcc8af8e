package compliance

import (
	"testing"
	"time"
)

func TestPeriodKeyPerScope(t *testing.T) {
	at := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	period, err := PeriodKey(ScopeInspection, at)
	if err != nil {
		t.Fatalf("PeriodKey(inspection) error = %v", err)
	}
	if period != "2026-06" {
		t.Fatalf("PeriodKey(inspection) = %q, want 2026-06", period)
	}

	period, err = PeriodKey(ScopeEstablishment, at)
	if err != nil {
		t.Fatalf("PeriodKey(establishment) error = %v", err)
	}
	if period != "2026" {
		t.Fatalf("PeriodKey(establishment) = %q, want 2026", period)
	}

	if _, err := PeriodKey(ScopeKind("bogus"), at); err == nil {
		t.Fatalf("PeriodKey(bogus) expected error")
	}
}

func TestFormatReference(t *testing.T) {
	cases := []struct {
		kind   ScopeKind
		period string
		seq    uint64
		want   string
	}{
		{ScopeInspection, "2026-06", 7, "HSI-2026-06-0007"},
		{ScopeEstablishment, "2026", 12, "EST-2026-00012"},
		{ScopeCertificate, "2026", 123, "CERT-2026-000123"},
	}
	for _, tc := range cases {
		got, err := FormatReference(tc.kind, tc.period, tc.seq)
		if err != nil {
			t.Fatalf("FormatReference(%s) error = %v", tc.kind, err)
		}
		if got != tc.want {
			t.Fatalf("FormatReference(%s) = %q, want %q", tc.kind, got, tc.want)
		}
	}

	if _, err := FormatReference(ScopeInspection, "", 1); err == nil {
		t.Fatalf("FormatReference() expected error for empty period")
	}
}

func TestMaxSequence(t *testing.T) {
	if got := MaxSequence(ScopeInspection); got != 9999 {
		t.Fatalf("MaxSequence(inspection) = %d, want 9999", got)
	}
	if got := MaxSequence(ScopeEstablishment); got != 99999 {
		t.Fatalf("MaxSequence(establishment) = %d, want 99999", got)
	}
	if got := MaxSequence(ScopeCertificate); got != 999999 {
		t.Fatalf("MaxSequence(certificate) = %d, want 999999", got)
	}
}
