package compliance

import "fmt"

// EstablishmentHistory is the evidence a risk scorer evaluates.
type EstablishmentHistory struct {
	OpenCritical      int
	OpenMajor         int
	OpenMinor         int
	ResolvedLastYear  int
	CompletedLastYear int
	LastScorePercent  float64
	HasCompletedScore bool
}

// RiskAssessment is a scored category plus the reasoning behind it.
type RiskAssessment struct {
	Category  RiskCategory
	Rationale string
}

// RiskScorer derives an establishment's risk category from its history.
// Implementations must be deterministic for the same history.
type RiskScorer interface {
	ScoreRisk(history EstablishmentHistory) RiskAssessment
}

// HeuristicRiskScorer is the default fixed-formula scorer. It stands in for
// a predictive model behind the same interface.
type HeuristicRiskScorer struct{}

func (HeuristicRiskScorer) ScoreRisk(h EstablishmentHistory) RiskAssessment {
	points := h.OpenCritical*SeverityCritical.Weight() +
		h.OpenMajor*SeverityMajor.Weight() +
		h.OpenMinor*SeverityMinor.Weight() +
		h.ResolvedLastYear

	if h.HasCompletedScore && h.LastScorePercent < 60 {
		points += 3
	}

	category := RiskLow
	switch {
	case h.OpenCritical > 0 || points >= 6:
		category = RiskHigh
	case points >= 3:
		category = RiskMedium
	}

	rationale := fmt.Sprintf(
		"open violations critical=%d major=%d minor=%d, resolved last year=%d, score points=%d",
		h.OpenCritical, h.OpenMajor, h.OpenMinor, h.ResolvedLastYear, points,
	)
	if h.HasCompletedScore {
		rationale += fmt.Sprintf(", last inspection %.2f%%", h.LastScorePercent)
	}

	return RiskAssessment{Category: category, Rationale: rationale}
}
