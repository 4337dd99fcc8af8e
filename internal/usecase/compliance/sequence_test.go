package compliance

import (
	"context"
	"testing"
	"time"
)

func TestEstablishmentReferencesAreSequential(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	wants := []string{"EST-2026-00001", "EST-2026-00002", "EST-2026-00003"}
	for i, want := range wants {
		establishment, err := svc.RegisterEstablishment(ctx, RegisterEstablishmentInput{
			Name:              "Place",
			EstablishmentType: "restaurant",
			Actor:             "registrar",
		})
		if err != nil {
			t.Fatalf("RegisterEstablishment(%d) error = %v", i, err)
		}
		if establishment.Reference != want {
			t.Fatalf("reference = %q, want %q", establishment.Reference, want)
		}
	}
}

func TestInspectionReferencesResetPerMonth(t *testing.T) {
	svc, _, _ := setupService(t)
	seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)

	first := scheduleInspection(t, svc, establishment.Reference, "medium")
	if first.Reference != "HSI-2026-06-0001" {
		t.Fatalf("first reference = %q", first.Reference)
	}
	second := scheduleInspection(t, svc, establishment.Reference, "medium")
	if second.Reference != "HSI-2026-06-0002" {
		t.Fatalf("second reference = %q", second.Reference)
	}

	// A new month opens a fresh sequence; the old month's counter is never
	// reused.
	svc.now = func() time.Time { return time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC) }
	third := scheduleInspection(t, svc, establishment.Reference, "medium")
	if third.Reference != "HSI-2026-07-0001" {
		t.Fatalf("third reference = %q, want HSI-2026-07-0001", third.Reference)
	}
}

func TestSequenceScopesAreIndependent(t *testing.T) {
	svc, _, _ := setupService(t)
	seedRoutineTemplate(t, svc)
	ctx := context.Background()

	establishment := registerEstablishment(t, svc)
	inspection := completeInspection(t, svc, establishment.Reference)

	certificate, err := svc.IssueCertificate(ctx, IssueCertificateInput{
		InspectionRef:   inspection.Reference,
		CertificateType: "health_safety",
		ValidityMonths:  12,
		Actor:           "officer-3",
	})
	if err != nil {
		t.Fatalf("IssueCertificate() error = %v", err)
	}

	if certificate.CertificateNumber != "CERT-2026-000001" {
		t.Fatalf("certificate number = %q, want CERT-2026-000001 (independent of other scopes)", certificate.CertificateNumber)
	}
}
