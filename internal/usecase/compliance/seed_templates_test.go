package compliance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTemplateFile(t *testing.T, raw string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write templates: %v", err)
	}
	return path
}

func TestSeedTemplatesVersioning(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	v1 := seedRoutineTemplate(t, svc)

	path := writeTemplateFile(t, `templates:
  - code: HS-ROUTINE
    inspection_type: routine
    items:
      - category: hygiene
        requirement: Surfaces sanitized
        mandatory: true
        points: 10
      - category: pest_control
        requirement: No pest activity
        mandatory: true
        points: 20
`)
	created, err := svc.SeedTemplates(ctx, path, "seeder")
	if err != nil {
		t.Fatalf("SeedTemplates() v2 error = %v", err)
	}
	if len(created) != 1 || created[0].Version != 2 {
		t.Fatalf("SeedTemplates() v2 = %+v", created)
	}

	active, err := svc.repo.GetActiveTemplate(ctx, "routine")
	if err != nil {
		t.Fatalf("GetActiveTemplate() error = %v", err)
	}
	if active.Version != 2 {
		t.Fatalf("active version = %d, want 2", active.Version)
	}

	items, err := svc.repo.ListTemplateItems(ctx, active.TemplateID)
	if err != nil {
		t.Fatalf("ListTemplateItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("v2 items = %d, want 2", len(items))
	}

	// The archived v1 keeps its own items for inspections pinned to it.
	v1Items, err := svc.repo.ListTemplateItems(ctx, v1[0].TemplateID)
	if err != nil {
		t.Fatalf("ListTemplateItems(v1) error = %v", err)
	}
	if len(v1Items) != 3 {
		t.Fatalf("v1 items = %d, want 3", len(v1Items))
	}
}

func TestInspectionStaysPinnedToScheduledTemplateVersion(t *testing.T) {
	svc, _, _ := setupService(t)
	items := seedRoutineTemplate(t, svc)
	establishment := registerEstablishment(t, svc)
	ctx := context.Background()

	inspection := scheduleInspection(t, svc, establishment.Reference, "medium")
	startInspection(t, svc, inspection.Reference)

	// Reseed after scheduling; the in-flight inspection must keep scoring
	// against the version it was scheduled with.
	path := writeTemplateFile(t, `templates:
  - code: HS-ROUTINE
    inspection_type: routine
    items:
      - category: hygiene
        requirement: Surfaces sanitized
        mandatory: true
        points: 100
`)
	if _, err := svc.SeedTemplates(ctx, path, "seeder"); err != nil {
		t.Fatalf("SeedTemplates() error = %v", err)
	}

	if err := svc.RecordResponses(ctx, RecordResponsesInput{
		InspectionRef: inspection.Reference,
		Responses: []ResponseInput{
			{ItemID: items[0].ItemID, Response: "pass"},
			{ItemID: items[1].ItemID, Response: "fail"},
		},
		Actor: "insp-7",
	}); err != nil {
		t.Fatalf("RecordResponses() error = %v", err)
	}

	detail, err := svc.CompleteInspection(ctx, CompleteInspectionInput{
		InspectionRef: inspection.Reference,
		Actor:         "insp-7",
	})
	if err != nil {
		t.Fatalf("CompleteInspection() error = %v", err)
	}

	// 10 of 20 answered points from the pinned v1 items, not the reseeded
	// 100-point item.
	if detail.Score.EarnedPoints != 10 || detail.Score.TotalPoints != 20 {
		t.Fatalf("score = %d/%d, want 10/20 from pinned version", detail.Score.EarnedPoints, detail.Score.TotalPoints)
	}
}

func TestSeedTemplatesRejectsInvalidFile(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	path := writeTemplateFile(t, `templates:
  - code: HS-BAD
    inspection_type: routine
    items: []
`)
	if _, err := svc.SeedTemplates(ctx, path, "seeder"); err == nil {
		t.Fatalf("SeedTemplates() expected error for template without items")
	}

	path = writeTemplateFile(t, `templates:
  - code: HS-BAD
    inspection_type: routine
    items:
      - category: hygiene
        requirement: Something
        points: 0
`)
	if _, err := svc.SeedTemplates(ctx, path, "seeder"); err == nil {
		t.Fatalf("SeedTemplates() expected error for zero-point item")
	}
}
