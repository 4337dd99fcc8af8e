package compliance

import "math"

type Rating string

const (
	RatingExcellent        Rating = "EXCELLENT"
	RatingGood             Rating = "GOOD"
	RatingFair             Rating = "FAIR"
	RatingNeedsImprovement Rating = "NEEDS_IMPROVEMENT"
)

// RatingThresholds are the minimum percentages for each rating band.
type RatingThresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

func DefaultRatingThresholds() RatingThresholds {
	return RatingThresholds{Excellent: 90, Good: 75, Fair: 60}
}

func (t RatingThresholds) RatingFor(percentage float64) Rating {
	switch {
	case percentage >= t.Excellent:
		return RatingExcellent
	case percentage >= t.Good:
		return RatingGood
	case percentage >= t.Fair:
		return RatingFair
	default:
		return RatingNeedsImprovement
	}
}

// ScoredItem is the subset of a checklist item that scoring needs.
type ScoredItem struct {
	ItemID uint64
	Points int
}

// ScoreResult is the outcome of scoring one inspection's responses.
type ScoreResult struct {
	EarnedPoints int
	TotalPoints  int
	Percentage   float64
	Rating       Rating
}

// Score converts checklist responses into a percentage and rating.
//
// Only items that were answered count toward the total; pass earns the item's
// points, fail and na earn zero. Pure function, no side effects.
func Score(responses map[uint64]ResponseValue, items []ScoredItem, thresholds RatingThresholds) ScoreResult {
	earned := 0
	total := 0

	for _, item := range items {
		value, answered := responses[item.ItemID]
		if !answered {
			continue
		}

		total += item.Points
		if value == ResponsePass {
			earned += item.Points
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(earned)/float64(total)*100*100) / 100
	}

	return ScoreResult{
		EarnedPoints: earned,
		TotalPoints:  total,
		Percentage:   percentage,
		Rating:       thresholds.RatingFor(percentage),
	}
}
