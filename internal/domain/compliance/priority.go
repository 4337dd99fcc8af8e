package compliance

// DispatchRank orders pending inspections for a day's schedule. Lower is
// more urgent: high-risk establishment first, then urgent-priority
// inspections, then non-compliant establishments, then everything else.
func DispatchRank(risk RiskCategory, priority InspectionPriority, status ComplianceStatus) int {
	switch {
	case risk == RiskHigh:
		return 1
	case priority == PriorityUrgent:
		return 2
	case status == ComplianceNonCompliant:
		return 3
	default:
		return 4
	}
}
