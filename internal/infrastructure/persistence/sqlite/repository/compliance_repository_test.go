package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"inspectra/internal/domain/compliance"
	"inspectra/internal/infrastructure/persistence/sqlite/model"
	"inspectra/internal/infrastructure/persistence/sqlite/uow"
	"inspectra/internal/ports"
)

func setupComplianceRepository(t *testing.T) *ComplianceRepository {
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
	return NewComplianceRepository(db)
}

func createInspectionRow(t *testing.T, repo *ComplianceRepository, reference string, status compliance.InspectionStatus) ports.Inspection {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	inspection, err := repo.CreateInspection(context.Background(), ports.Inspection{
		Reference:       reference,
		EstablishmentID: 1,
		TemplateID:      1,
		InspectionType:  "routine",
		ScheduledDate:   "2026-06-20",
		Priority:        compliance.PriorityMedium,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("CreateInspection() error = %v", err)
	}
	return inspection
}

func TestTransitionInspectionIsGuarded(t *testing.T) {
	repo := setupComplianceRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	inspection := createInspectionRow(t, repo, "HSI-2026-06-0001", compliance.InspectionPending)

	ok, err := repo.TransitionInspection(ctx, inspection.InspectionID, compliance.InspectionPending, ports.InspectionTransition{
		To:        compliance.InspectionInProgress,
		StartedAt: &now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("TransitionInspection() error = %v", err)
	}
	if !ok {
		t.Fatalf("TransitionInspection() expected a row transitioned")
	}

	// A second attempt from pending finds no matching row.
	ok, err = repo.TransitionInspection(ctx, inspection.InspectionID, compliance.InspectionPending, ports.InspectionTransition{
		To:        compliance.InspectionInProgress,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("TransitionInspection() second error = %v", err)
	}
	if ok {
		t.Fatalf("TransitionInspection() second attempt must not transition")
	}

	got, err := repo.GetInspection(ctx, inspection.InspectionID)
	if err != nil {
		t.Fatalf("GetInspection() error = %v", err)
	}
	if got.Status != compliance.InspectionInProgress {
		t.Fatalf("status = %q", got.Status)
	}
	if got.StartedAt == nil {
		t.Fatalf("started_at not written")
	}
}

func TestCreateInspectionRejectsDuplicateReference(t *testing.T) {
	repo := setupComplianceRepository(t)

	createInspectionRow(t, repo, "HSI-2026-06-0001", compliance.InspectionPending)

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := repo.CreateInspection(context.Background(), ports.Inspection{
		Reference:       "HSI-2026-06-0001",
		EstablishmentID: 1,
		TemplateID:      1,
		InspectionType:  "routine",
		ScheduledDate:   "2026-06-21",
		Priority:        compliance.PriorityMedium,
		Status:          compliance.InspectionPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if !errors.Is(err, compliance.ErrConstraintViolation) {
		t.Fatalf("CreateInspection() duplicate error = %v, want ErrConstraintViolation", err)
	}
}

func TestNextSequenceIncrementsPerScopeAndPeriod(t *testing.T) {
	repo := setupComplianceRepository(t)
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		got, err := repo.NextSequence(ctx, "inspection", "2026-06")
		if err != nil {
			t.Fatalf("NextSequence() error = %v", err)
		}
		if got != want {
			t.Fatalf("NextSequence() = %d, want %d", got, want)
		}
	}

	// A different period starts from 1 again.
	got, err := repo.NextSequence(ctx, "inspection", "2026-07")
	if err != nil {
		t.Fatalf("NextSequence() error = %v", err)
	}
	if got != 1 {
		t.Fatalf("NextSequence(new period) = %d, want 1", got)
	}

	// A different scope has its own counter.
	got, err = repo.NextSequence(ctx, "certificate", "2026")
	if err != nil {
		t.Fatalf("NextSequence() error = %v", err)
	}
	if got != 1 {
		t.Fatalf("NextSequence(new scope) = %d, want 1", got)
	}
}

func TestNextSequenceConcurrentAllocationsAreDistinct(t *testing.T) {
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
	// SQLite permits one writer at a time; capping the pool makes concurrent
	// transactions queue instead of failing busy, so the race under test is
	// between the goroutines, not the driver.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.SequenceCounter{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	repo := NewComplianceRepository(db)
	unit := uow.NewUnitOfWork(db)

	const callers = 8
	allocated := make(chan uint64, callers)
	failed := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := unit.WithTx(context.Background(), func(txCtx context.Context) error {
				seq, err := repo.NextSequence(txCtx, "inspection", "2026-06")
				if err != nil {
					return err
				}
				allocated <- seq
				return nil
			})
			if err != nil {
				failed <- err
			}
		}()
	}
	wg.Wait()
	close(allocated)
	close(failed)

	for err := range failed {
		t.Fatalf("NextSequence() concurrent error = %v", err)
	}

	seen := make(map[uint64]bool, callers)
	for seq := range allocated {
		if seq < 1 || seq > callers {
			t.Fatalf("sequence %d outside 1..%d", seq, callers)
		}
		if seen[seq] {
			t.Fatalf("sequence %d allocated twice", seq)
		}
		seen[seq] = true
	}
	if len(seen) != callers {
		t.Fatalf("allocated %d distinct sequences, want %d", len(seen), callers)
	}
}

func TestMarkViolationResolvedIsGuarded(t *testing.T) {
	repo := setupComplianceRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	violation, err := repo.CreateViolation(ctx, ports.Violation{
		InspectionID:    1,
		EstablishmentID: 1,
		Category:        "hygiene",
		Severity:        compliance.SeverityMajor,
		Description:     "dirty surfaces",
		Status:          compliance.ViolationOpen,
		ReportedBy:      "insp-7",
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("CreateViolation() error = %v", err)
	}

	ok, err := repo.MarkViolationResolved(ctx, violation.ViolationID, "insp-7", "fixed", now)
	if err != nil {
		t.Fatalf("MarkViolationResolved() error = %v", err)
	}
	if !ok {
		t.Fatalf("MarkViolationResolved() expected a row transitioned")
	}

	ok, err = repo.MarkViolationResolved(ctx, violation.ViolationID, "insp-7", "fixed again", now)
	if err != nil {
		t.Fatalf("MarkViolationResolved() second error = %v", err)
	}
	if ok {
		t.Fatalf("MarkViolationResolved() second attempt must not transition")
	}

	got, err := repo.GetViolation(ctx, violation.ViolationID)
	if err != nil {
		t.Fatalf("GetViolation() error = %v", err)
	}
	if got.Status != compliance.ViolationResolved {
		t.Fatalf("status = %q", got.Status)
	}
	if got.ResolvedBy == nil || *got.ResolvedBy != "insp-7" {
		t.Fatalf("resolved_by = %v", got.ResolvedBy)
	}
}

func TestGetEstablishmentNotFound(t *testing.T) {
	repo := setupComplianceRepository(t)

	_, err := repo.GetEstablishment(context.Background(), 42)
	if !errors.Is(err, compliance.ErrNotFound) {
		t.Fatalf("GetEstablishment() error = %v, want ErrNotFound", err)
	}
	_, err = repo.GetEstablishmentByReference(context.Background(), "EST-2026-00042")
	if !errors.Is(err, compliance.ErrNotFound) {
		t.Fatalf("GetEstablishmentByReference() error = %v, want ErrNotFound", err)
	}
}
