package compliance

import (
	"strings"
	"testing"
)

func TestHeuristicRiskScorerNoHistoryIsLow(t *testing.T) {
	got := HeuristicRiskScorer{}.ScoreRisk(EstablishmentHistory{})
	if got.Category != RiskLow {
		t.Fatalf("ScoreRisk() category = %q, want low", got.Category)
	}
	if got.Rationale == "" {
		t.Fatalf("ScoreRisk() rationale must not be empty")
	}
}

func TestHeuristicRiskScorerOpenCriticalIsHigh(t *testing.T) {
	got := HeuristicRiskScorer{}.ScoreRisk(EstablishmentHistory{OpenCritical: 1})
	if got.Category != RiskHigh {
		t.Fatalf("ScoreRisk() category = %q, want high", got.Category)
	}
}

func TestHeuristicRiskScorerAccumulatedPoints(t *testing.T) {
	// Two open majors: 4 points -> medium.
	got := HeuristicRiskScorer{}.ScoreRisk(EstablishmentHistory{OpenMajor: 2})
	if got.Category != RiskMedium {
		t.Fatalf("ScoreRisk() category = %q, want medium", got.Category)
	}

	// Three open majors: 6 points -> high even without a critical.
	got = HeuristicRiskScorer{}.ScoreRisk(EstablishmentHistory{OpenMajor: 3})
	if got.Category != RiskHigh {
		t.Fatalf("ScoreRisk() category = %q, want high", got.Category)
	}
}

func TestHeuristicRiskScorerLowScoreBumpsPoints(t *testing.T) {
	history := EstablishmentHistory{
		OpenMinor:         1,
		HasCompletedScore: true,
		LastScorePercent:  55,
	}
	got := HeuristicRiskScorer{}.ScoreRisk(history)
	if got.Category != RiskMedium {
		t.Fatalf("ScoreRisk() category = %q, want medium (1 + 3 score points)", got.Category)
	}
	if !strings.Contains(got.Rationale, "55.00%") {
		t.Fatalf("ScoreRisk() rationale = %q, want last inspection percentage", got.Rationale)
	}
}

func TestHeuristicRiskScorerDeterministic(t *testing.T) {
	history := EstablishmentHistory{OpenMajor: 1, ResolvedLastYear: 2}
	first := HeuristicRiskScorer{}.ScoreRisk(history)
	second := HeuristicRiskScorer{}.ScoreRisk(history)
	if first != second {
		t.Fatalf("ScoreRisk() not deterministic: %+v vs %+v", first, second)
	}
}
