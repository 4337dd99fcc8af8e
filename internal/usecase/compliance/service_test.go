package compliance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "inspectra/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "inspectra/internal/infrastructure/persistence/sqlite/uow"
	"inspectra/internal/ports"
)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{
		data: make(map[string]string),
	}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type testPublisher struct {
	events []ports.OutboundEvent
}

func (p *testPublisher) Publish(_ context.Context, event ports.OutboundEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *testPublisher) named(name string) []ports.OutboundEvent {
	var matched []ports.OutboundEvent
	for _, event := range p.events {
		if event.Name == name {
			matched = append(matched, event)
		}
	}
	return matched
}

func setupService(t *testing.T) (*Service, *testCache, *testPublisher) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "compliance.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(
		&model.Establishment{},
		&model.ChecklistTemplate{},
		&model.ChecklistItem{},
		&model.Inspection{},
		&model.ChecklistResponse{},
		&model.Violation{},
		&model.Certificate{},
		&model.SequenceCounter{},
		&model.AuditEvent{},
		&model.ComplianceKV{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	cache := newTestCache()
	publisher := &testPublisher{}
	repo := sqliterepo.NewComplianceRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)

	svc := NewService(repo, uow, cache, publisher, domaincompliance.DefaultPolicy(), domaincompliance.HeuristicRiskScorer{})
	svc.now = func() time.Time {
		return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, cache, publisher
}

func seedRoutineTemplate(t *testing.T, svc *Service) []ports.ChecklistItem {
	t.Helper()

	path := filepath.Join(t.TempDir(), "templates.yaml")
	raw := `templates:
  - code: HS-ROUTINE
    inspection_type: routine
    items:
      - category: hygiene
        requirement: Surfaces sanitized
        mandatory: true
        points: 10
      - category: storage
        requirement: Cold chain maintained
        mandatory: true
        points: 10
      - category: documentation
        requirement: Records up to date
        mandatory: false
        points: 5
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write templates: %v", err)
	}

	created, err := svc.SeedTemplates(context.Background(), path, "seeder")
	if err != nil {
		t.Fatalf("SeedTemplates() error = %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("SeedTemplates() created %d templates", len(created))
	}

	items, err := svc.repo.ListTemplateItems(context.Background(), created[0].TemplateID)
	if err != nil {
		t.Fatalf("ListTemplateItems() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("template items = %d, want 3", len(items))
	}
	return items
}

func registerEstablishment(t *testing.T, svc *Service) ports.Establishment {
	t.Helper()

	establishment, err := svc.RegisterEstablishment(context.Background(), RegisterEstablishmentInput{
		Name:              "Golden Wok",
		EstablishmentType: "restaurant",
		OwnerName:         "Lee",
		Address:           "12 Harbor Rd",
		Actor:             "registrar",
	})
	if err != nil {
		t.Fatalf("RegisterEstablishment() error = %v", err)
	}
	return establishment
}

func scheduleInspection(t *testing.T, svc *Service, establishmentRef string, priority string) ports.Inspection {
	t.Helper()

	inspection, err := svc.ScheduleInspection(context.Background(), ScheduleInspectionInput{
		EstablishmentRef: establishmentRef,
		InspectionType:   "routine",
		ScheduledDate:    "2026-06-20",
		Priority:         priority,
		InspectorID:      "insp-7",
		Actor:            "scheduler",
	})
	if err != nil {
		t.Fatalf("ScheduleInspection() error = %v", err)
	}
	return inspection
}

func startInspection(t *testing.T, svc *Service, reference string) ports.Inspection {
	t.Helper()

	inspection, err := svc.StartInspection(context.Background(), StartInspectionInput{
		InspectionRef: reference,
		Actor:         "insp-7",
	})
	if err != nil {
		t.Fatalf("StartInspection() error = %v", err)
	}
	return inspection
}
