package compliance

import (
	"fmt"
	"strings"
)

// ComplianceStatus is the establishment-level flag derived from open violations.
// It is written only by the status synchronizer.
type ComplianceStatus string

const (
	CompliancePending      ComplianceStatus = "pending"
	ComplianceCompliant    ComplianceStatus = "compliant"
	ComplianceNonCompliant ComplianceStatus = "non_compliant"
	ComplianceSuspended    ComplianceStatus = "suspended"
)

type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

func ParseRiskCategory(raw string) (RiskCategory, error) {
	switch RiskCategory(strings.ToLower(strings.TrimSpace(raw))) {
	case RiskLow:
		return RiskLow, nil
	case RiskMedium:
		return RiskMedium, nil
	case RiskHigh:
		return RiskHigh, nil
	default:
		return "", fmt.Errorf("%w: risk category %q", ErrInvalidValue, raw)
	}
}

type InspectionStatus string

const (
	InspectionPending    InspectionStatus = "pending"
	InspectionInProgress InspectionStatus = "in_progress"
	InspectionCompleted  InspectionStatus = "completed"
	InspectionCancelled  InspectionStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted.
func (s InspectionStatus) IsTerminal() bool {
	return s == InspectionCompleted || s == InspectionCancelled
}

var inspectionTransitions = map[InspectionStatus][]InspectionStatus{
	InspectionPending:    {InspectionInProgress, InspectionCancelled},
	InspectionInProgress: {InspectionCompleted, InspectionCancelled},
}

// CanTransitionTo reports whether the inspection state machine permits from -> to.
func (s InspectionStatus) CanTransitionTo(to InspectionStatus) bool {
	for _, allowed := range inspectionTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type InspectionPriority string

const (
	PriorityLow    InspectionPriority = "low"
	PriorityMedium InspectionPriority = "medium"
	PriorityHigh   InspectionPriority = "high"
	PriorityUrgent InspectionPriority = "urgent"
)

func ParseInspectionPriority(raw string) (InspectionPriority, error) {
	switch InspectionPriority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityUrgent:
		return PriorityUrgent, nil
	default:
		return "", fmt.Errorf("%w: inspection priority %q", ErrInvalidValue, raw)
	}
}

type ViolationSeverity string

const (
	SeverityMinor    ViolationSeverity = "minor"
	SeverityMajor    ViolationSeverity = "major"
	SeverityCritical ViolationSeverity = "critical"
)

// Weight returns a numeric weight for risk scoring and sorting.
func (s ViolationSeverity) Weight() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMajor:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

func ParseViolationSeverity(raw string) (ViolationSeverity, error) {
	switch ViolationSeverity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityMinor:
		return SeverityMinor, nil
	case SeverityMajor:
		return SeverityMajor, nil
	case SeverityCritical:
		return SeverityCritical, nil
	default:
		return "", fmt.Errorf("%w: violation severity %q", ErrInvalidValue, raw)
	}
}

type ViolationStatus string

const (
	ViolationOpen       ViolationStatus = "open"
	ViolationInProgress ViolationStatus = "in_progress"
	ViolationResolved   ViolationStatus = "resolved"
)

// IsOpen reports whether the violation still counts against compliance.
func (s ViolationStatus) IsOpen() bool {
	return s == ViolationOpen || s == ViolationInProgress
}

type CertificateStatus string

const (
	CertificateValid     CertificateStatus = "valid"
	CertificateExpired   CertificateStatus = "expired"
	CertificateRevoked   CertificateStatus = "revoked"
	CertificateSuspended CertificateStatus = "suspended"

	// CertificateExpiringSoon is derived at verification time, never stored.
	CertificateExpiringSoon CertificateStatus = "expiring_soon"
)

// ResponseValue is a single checklist answer.
type ResponseValue string

const (
	ResponsePass ResponseValue = "pass"
	ResponseFail ResponseValue = "fail"
	ResponseNA   ResponseValue = "na"
)

func ParseResponseValue(raw string) (ResponseValue, error) {
	switch ResponseValue(strings.ToLower(strings.TrimSpace(raw))) {
	case ResponsePass:
		return ResponsePass, nil
	case ResponseFail:
		return ResponseFail, nil
	case ResponseNA:
		return ResponseNA, nil
	default:
		return "", fmt.Errorf("%w: checklist response %q", ErrInvalidValue, raw)
	}
}
