package ports

import (
	"context"

	"inspectra/internal/domain/compliance"
)

// Timestamps are RFC3339Nano UTC strings; calendar dates are "2006-01-02".

type Establishment struct {
	EstablishmentID   uint64
	Reference         string
	Name              string
	EstablishmentType string
	OwnerName         string
	Address           string
	RiskCategory      compliance.RiskCategory
	ComplianceStatus  compliance.ComplianceStatus
	CreatedAt         string
	UpdatedAt         string
}

type ChecklistTemplate struct {
	TemplateID     uint64
	Code           string
	InspectionType string
	Version        int
	Status         string
	CreatedAt      string
}

type ChecklistItem struct {
	ItemID      uint64
	TemplateID  uint64
	Category    string
	Requirement string
	Mandatory   bool
	Points      int
	SortOrder   int
}

type Inspection struct {
	InspectionID    uint64
	Reference       string
	EstablishmentID uint64
	TemplateID      uint64
	InspectionType  string
	InspectorID     *string
	ScheduledDate   string
	Priority        compliance.InspectionPriority
	Status          compliance.InspectionStatus
	StartedAt       *string
	EndedAt         *string
	OverallRating   *string
	InspectorNotes  *string
	ScoreEarned     *int
	ScoreTotal      *int
	ScorePercent    *float64
	CreatedAt       string
	UpdatedAt       string
}

// InspectionTransition carries the field writes that accompany a guarded
// status change. Nil fields are left untouched.
type InspectionTransition struct {
	To             compliance.InspectionStatus
	StartedAt      *string
	EndedAt        *string
	OverallRating  *string
	InspectorNotes *string
	ScoreEarned    *int
	ScoreTotal     *int
	ScorePercent   *float64
	UpdatedAt      string
}

type InspectionFilter struct {
	EstablishmentID uint64
	Status          compliance.InspectionStatus
	ScheduledDate   string
}

type ChecklistResponse struct {
	InspectionID uint64
	ItemID       uint64
	Response     compliance.ResponseValue
	Notes        string
	Evidence     string
	RecordedBy   string
	RecordedAt   string
}

type Violation struct {
	ViolationID        uint64
	InspectionID       uint64
	EstablishmentID    uint64
	Category           string
	Severity           compliance.ViolationSeverity
	Description        string
	Status             compliance.ViolationStatus
	CorrectiveDeadline *string
	ResolvedBy         *string
	ResolutionNotes    *string
	ResolutionDate     *string
	ReportedBy         string
	CreatedAt          string
	UpdatedAt          string
}

type ViolationFilter struct {
	EstablishmentID uint64
	InspectionID    uint64
	OpenOnly        bool
	Since           string
}

type Certificate struct {
	CertificateID     uint64
	CertificateNumber string
	EstablishmentID   uint64
	InspectionID      uint64
	CertificateType   string
	IssueDate         string
	ExpiryDate        string
	Status            compliance.CertificateStatus
	Remarks           string
	IssuedBy          string
	RevokedBy         *string
	RevokedAt         *string
	RevocationReason  *string
	CreatedAt         string
	UpdatedAt         string
}

// DispatchCandidate is a pending inspection joined with the establishment
// fields prioritization needs.
type DispatchCandidate struct {
	Inspection       Inspection
	RiskCategory     compliance.RiskCategory
	ComplianceStatus compliance.ComplianceStatus
}

type AuditEntry struct {
	AuditID    uint64
	EntityKind string
	EntityRef  string
	Action     string
	Actor      string
	Detail     string
	CreatedAt  string
}

type EstablishmentRepository interface {
	CreateEstablishment(ctx context.Context, establishment Establishment) (Establishment, error)
	GetEstablishment(ctx context.Context, establishmentID uint64) (Establishment, error)
	GetEstablishmentByReference(ctx context.Context, reference string) (Establishment, error)
	// SetComplianceStatus is reserved for the status synchronizer; no other
	// code path may write compliance_status.
	SetComplianceStatus(ctx context.Context, establishmentID uint64, status compliance.ComplianceStatus, updatedAt string) error
	SetRiskCategory(ctx context.Context, establishmentID uint64, category compliance.RiskCategory, updatedAt string) error
}

type TemplateRepository interface {
	CreateTemplateVersion(ctx context.Context, template ChecklistTemplate, items []ChecklistItem) (ChecklistTemplate, error)
	GetTemplate(ctx context.Context, templateID uint64) (ChecklistTemplate, error)
	GetActiveTemplate(ctx context.Context, inspectionType string) (ChecklistTemplate, error)
	ListTemplateItems(ctx context.Context, templateID uint64) ([]ChecklistItem, error)
	ArchiveTemplate(ctx context.Context, templateID uint64) error
}

type InspectionRepository interface {
	CreateInspection(ctx context.Context, inspection Inspection) (Inspection, error)
	GetInspection(ctx context.Context, inspectionID uint64) (Inspection, error)
	GetInspectionByReference(ctx context.Context, reference string) (Inspection, error)
	ListInspections(ctx context.Context, filter InspectionFilter) ([]Inspection, error)
	// TransitionInspection performs a guarded "status = from" update and
	// reports whether a row was actually transitioned.
	TransitionInspection(ctx context.Context, inspectionID uint64, from compliance.InspectionStatus, change InspectionTransition) (bool, error)
	UpsertResponse(ctx context.Context, response ChecklistResponse) error
	ListResponses(ctx context.Context, inspectionID uint64) ([]ChecklistResponse, error)
	ListDispatchCandidates(ctx context.Context, scheduledDate string) ([]DispatchCandidate, error)
}

type ViolationRepository interface {
	CreateViolation(ctx context.Context, violation Violation) (Violation, error)
	GetViolation(ctx context.Context, violationID uint64) (Violation, error)
	ListViolations(ctx context.Context, filter ViolationFilter) ([]Violation, error)
	// MarkViolationResolved is a guarded update from an unresolved status;
	// reports whether a row was transitioned.
	MarkViolationResolved(ctx context.Context, violationID uint64, resolvedBy string, notes string, resolvedAt string) (bool, error)
}

type CertificateRepository interface {
	CreateCertificate(ctx context.Context, certificate Certificate) (Certificate, error)
	GetCertificate(ctx context.Context, certificateID uint64) (Certificate, error)
	GetCertificateByNumber(ctx context.Context, certificateNumber string) (Certificate, error)
	GetCertificateByInspection(ctx context.Context, inspectionID uint64) (Certificate, error)
	ListCertificates(ctx context.Context, establishmentID uint64) ([]Certificate, error)
	// MarkCertificateRevoked is a guarded update from valid; reports whether
	// a row was transitioned.
	MarkCertificateRevoked(ctx context.Context, certificateID uint64, revokedBy string, reason string, revokedAt string) (bool, error)
}

type SequenceRepository interface {
	// NextSequence atomically increments and returns the counter for
	// (scope, period), creating it at 1 when absent. Must run inside the
	// caller's transaction so an aborted allocation rolls back.
	NextSequence(ctx context.Context, scope string, period string) (uint64, error)
}

type AuditRepository interface {
	AppendAudit(ctx context.Context, entry AuditEntry) error
	ListAudit(ctx context.Context, entityKind string, entityRef string, limit int) ([]AuditEntry, error)
}

// ComplianceRepository aggregates everything the lifecycle service needs.
type ComplianceRepository interface {
	EstablishmentRepository
	TemplateRepository
	InspectionRepository
	ViolationRepository
	CertificateRepository
	SequenceRepository
	AuditRepository
}
