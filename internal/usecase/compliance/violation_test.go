package compliance

import (
	"context"
	"errors"
	"testing"

	domaincompliance "inspectra/internal/domain/compliance"
)

func TestReportCriticalViolationForcesNonCompliant(t *testing.T) {
	svc, cache, publisher := setupService(t)
	seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)
	ctx := context.Background()

	inspection := scheduleInspection(t, svc, establishment.Reference, "medium")
	startInspection(t, svc, inspection.Reference)

	violation, err := svc.ReportViolation(ctx, ReportViolationInput{
		InspectionRef:      inspection.Reference,
		Category:           "pest_control",
		Severity:           "critical",
		Description:        "active rodent infestation",
		CorrectiveDeadline: "2026-06-30",
		Actor:              "insp-7",
	})
	if err != nil {
		t.Fatalf("ReportViolation() error = %v", err)
	}
	if violation.Status != domaincompliance.ViolationOpen {
		t.Fatalf("violation status = %q", violation.Status)
	}

	got, err := svc.GetEstablishment(ctx, establishment.Reference)
	if err != nil {
		t.Fatalf("GetEstablishment() error = %v", err)
	}
	if got.ComplianceStatus != domaincompliance.ComplianceNonCompliant {
		t.Fatalf("compliance status = %q, want non_compliant", got.ComplianceStatus)
	}

	if cache.data[cacheEstablishmentStatusKey(establishment.Reference)] != "non_compliant" {
		t.Fatalf("cached status = %q", cache.data[cacheEstablishmentStatusKey(establishment.Reference)])
	}
	if events := publisher.named("violation.reported"); len(events) != 1 {
		t.Fatalf("violation.reported events = %d", len(events))
	}
}

func TestReportMinorViolationKeepsCompliant(t *testing.T) {
	svc, _, _ := setupService(t)
	seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)
	ctx := context.Background()

	inspection := scheduleInspection(t, svc, establishment.Reference, "medium")
	startInspection(t, svc, inspection.Reference)

	if _, err := svc.ReportViolation(ctx, ReportViolationInput{
		InspectionRef: inspection.Reference,
		Category:      "documentation",
		Severity:      "minor",
		Description:   "cleaning log incomplete",
		Actor:         "insp-7",
	}); err != nil {
		t.Fatalf("ReportViolation() error = %v", err)
	}

	got, err := svc.GetEstablishment(ctx, establishment.Reference)
	if err != nil {
		t.Fatalf("GetEstablishment() error = %v", err)
	}
	if got.ComplianceStatus != domaincompliance.ComplianceCompliant {
		t.Fatalf("compliance status = %q, want compliant (minor does not force non_compliant)", got.ComplianceStatus)
	}
}

func TestReportViolationRequiresActiveOrCompletedInspection(t *testing.T) {
	svc, _, _ := setupService(t)
	seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)
	ctx := context.Background()

	pending := scheduleInspection(t, svc, establishment.Reference, "medium")

	_, err := svc.ReportViolation(ctx, ReportViolationInput{
		InspectionRef: pending.Reference,
		Category:      "hygiene",
		Severity:      "major",
		Description:   "dirty surfaces",
		Actor:         "insp-7",
	})
	if !errors.Is(err, domaincompliance.ErrInvalidState) {
		t.Fatalf("ReportViolation() on pending error = %v, want ErrInvalidState", err)
	}
}

func TestResolveViolationRestoresCompliance(t *testing.T) {
	svc, _, _ := setupService(t)
	seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)
	ctx := context.Background()

	inspection := scheduleInspection(t, svc, establishment.Reference, "medium")
	startInspection(t, svc, inspection.Reference)

	violation, err := svc.ReportViolation(ctx, ReportViolationInput{
		InspectionRef: inspection.Reference,
		Category:      "pest_control",
		Severity:      "critical",
		Description:   "active rodent infestation",
		Actor:         "insp-7",
	})
	if err != nil {
		t.Fatalf("ReportViolation() error = %v", err)
	}

	if err := svc.ResolveViolation(ctx, ResolveViolationInput{
		ViolationID: violation.ViolationID,
		Notes:       "pest control treatment verified",
		Actor:       "insp-7",
	}); err != nil {
		t.Fatalf("ResolveViolation() error = %v", err)
	}

	got, err := svc.GetEstablishment(ctx, establishment.Reference)
	if err != nil {
		t.Fatalf("GetEstablishment() error = %v", err)
	}
	if got.ComplianceStatus != domaincompliance.ComplianceCompliant {
		t.Fatalf("compliance status = %q, want compliant after resolution", got.ComplianceStatus)
	}

	open, err := svc.ListViolations(ctx, establishment.Reference, true)
	if err != nil {
		t.Fatalf("ListViolations() error = %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("open violations = %d, want 0", len(open))
	}
}

func TestResolveViolationTwiceFails(t *testing.T) {
	svc, _, _ := setupService(t)
	seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)
	ctx := context.Background()

	inspection := scheduleInspection(t, svc, establishment.Reference, "medium")
	startInspection(t, svc, inspection.Reference)

	violation, err := svc.ReportViolation(ctx, ReportViolationInput{
		InspectionRef: inspection.Reference,
		Category:      "hygiene",
		Severity:      "major",
		Description:   "dirty surfaces",
		Actor:         "insp-7",
	})
	if err != nil {
		t.Fatalf("ReportViolation() error = %v", err)
	}

	if err := svc.ResolveViolation(ctx, ResolveViolationInput{
		ViolationID: violation.ViolationID,
		Actor:       "insp-7",
	}); err != nil {
		t.Fatalf("ResolveViolation() error = %v", err)
	}

	err = svc.ResolveViolation(ctx, ResolveViolationInput{
		ViolationID: violation.ViolationID,
		Actor:       "insp-7",
	})
	if !errors.Is(err, domaincompliance.ErrInvalidState) {
		t.Fatalf("ResolveViolation() twice error = %v, want ErrInvalidState", err)
	}
}

func TestNonCompliantPersistsWhileAnyCriticalOpen(t *testing.T) {
	svc, _, _ := setupService(t)
	seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)
	ctx := context.Background()

	inspection := scheduleInspection(t, svc, establishment.Reference, "medium")
	startInspection(t, svc, inspection.Reference)

	first, err := svc.ReportViolation(ctx, ReportViolationInput{
		InspectionRef: inspection.Reference,
		Category:      "pest_control",
		Severity:      "critical",
		Description:   "rodents",
		Actor:         "insp-7",
	})
	if err != nil {
		t.Fatalf("ReportViolation() error = %v", err)
	}
	if _, err := svc.ReportViolation(ctx, ReportViolationInput{
		InspectionRef: inspection.Reference,
		Category:      "storage",
		Severity:      "critical",
		Description:   "cold chain broken",
		Actor:         "insp-7",
	}); err != nil {
		t.Fatalf("ReportViolation() error = %v", err)
	}

	if err := svc.ResolveViolation(ctx, ResolveViolationInput{
		ViolationID: first.ViolationID,
		Actor:       "insp-7",
	}); err != nil {
		t.Fatalf("ResolveViolation() error = %v", err)
	}

	got, err := svc.GetEstablishment(ctx, establishment.Reference)
	if err != nil {
		t.Fatalf("GetEstablishment() error = %v", err)
	}
	if got.ComplianceStatus != domaincompliance.ComplianceNonCompliant {
		t.Fatalf("compliance status = %q, want non_compliant while second critical open", got.ComplianceStatus)
	}
}
