package compliance

import (
	"time"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/ports"
)

// Service owns the compliance lifecycle: establishment registration,
// inspection scheduling and execution, violation tracking, certificate
// issuance, and the derived-status synchronization between them. Every
// mutation runs inside a unit-of-work transaction; cache writes and
// outbound events happen best-effort after commit.
type Service struct {
	repo       ports.ComplianceRepository
	uow        ports.UnitOfWork
	cache      ports.Cache
	publisher  ports.EventPublisher
	policy     domaincompliance.Policy
	riskScorer domaincompliance.RiskScorer
	now        func() time.Time
}

func NewService(
	repo ports.ComplianceRepository,
	uow ports.UnitOfWork,
	cache ports.Cache,
	publisher ports.EventPublisher,
	policy domaincompliance.Policy,
	riskScorer domaincompliance.RiskScorer,
) *Service {
	return &Service{
		repo:       repo,
		uow:        uow,
		cache:      cache,
		publisher:  publisher,
		policy:     policy,
		riskScorer: riskScorer,
		now:        time.Now,
	}
}

type RegisterEstablishmentInput struct {
	Name              string
	EstablishmentType string
	OwnerName         string
	Address           string
	Actor             string
}

type ScheduleInspectionInput struct {
	EstablishmentRef string
	InspectionType   string
	ScheduledDate    string
	Priority         string
	InspectorID      string
	Actor            string
}

type StartInspectionInput struct {
	InspectionRef string
	Actor         string
}

type ResponseInput struct {
	ItemID   uint64
	Response string
	Notes    string
	Evidence string
}

type RecordResponsesInput struct {
	InspectionRef string
	Responses     []ResponseInput
	Actor         string
}

type CompleteInspectionInput struct {
	InspectionRef string
	OverallRating string
	Notes         string
	Actor         string
}

type CancelInspectionInput struct {
	InspectionRef string
	Reason        string
	Actor         string
}

type ReportViolationInput struct {
	InspectionRef      string
	Category           string
	Severity           string
	Description        string
	CorrectiveDeadline string
	Actor              string
}

type ResolveViolationInput struct {
	ViolationID uint64
	Notes       string
	Actor       string
}

type IssueCertificateInput struct {
	InspectionRef   string
	CertificateType string
	ValidityMonths  int
	Remarks         string
	Actor           string
}

type RevokeCertificateInput struct {
	CertificateNumber string
	Reason            string
	Actor             string
}

type RescoreRiskInput struct {
	EstablishmentRef string
	Actor            string
}

// InspectionDetail is the read model for one inspection with its responses
// and score.
type InspectionDetail struct {
	Inspection ports.Inspection
	Responses  []ports.ChecklistResponse
	Score      *domaincompliance.ScoreResult
}

// VerificationResult pairs a certificate with its status derived at call
// time; expiry is never written back.
type VerificationResult struct {
	Certificate   ports.Certificate
	DerivedStatus string
}

// DispatchItem is one slot in a day's prioritized schedule.
type DispatchItem struct {
	Inspection       ports.Inspection
	Rank             int
	RiskCategory     domaincompliance.RiskCategory
	ComplianceStatus domaincompliance.ComplianceStatus
}
