package compliance

import "testing"

func TestScoreCountsAnsweredItemsOnly(t *testing.T) {
	items := []ScoredItem{
		{ItemID: 1, Points: 10},
		{ItemID: 2, Points: 10},
		{ItemID: 3, Points: 10},
	}
	responses := map[uint64]ResponseValue{
		1: ResponsePass,
		2: ResponseFail,
	}

	got := Score(responses, items, DefaultRatingThresholds())

	if got.TotalPoints != 20 {
		t.Fatalf("Score() total = %d, want 20 (unanswered item excluded)", got.TotalPoints)
	}
	if got.EarnedPoints != 10 {
		t.Fatalf("Score() earned = %d, want 10", got.EarnedPoints)
	}
	if got.Percentage != 50 {
		t.Fatalf("Score() percentage = %v, want 50", got.Percentage)
	}
	if got.Rating != RatingNeedsImprovement {
		t.Fatalf("Score() rating = %q", got.Rating)
	}
}

func TestScoreEightOfTenPassIsGood(t *testing.T) {
	items := make([]ScoredItem, 0, 10)
	responses := make(map[uint64]ResponseValue, 10)
	for i := uint64(1); i <= 10; i++ {
		items = append(items, ScoredItem{ItemID: i, Points: 10})
		if i <= 8 {
			responses[i] = ResponsePass
		} else {
			responses[i] = ResponseFail
		}
	}

	got := Score(responses, items, DefaultRatingThresholds())

	if got.EarnedPoints != 80 || got.TotalPoints != 100 {
		t.Fatalf("Score() = %d/%d, want 80/100", got.EarnedPoints, got.TotalPoints)
	}
	if got.Percentage != 80 {
		t.Fatalf("Score() percentage = %v, want 80", got.Percentage)
	}
	if got.Rating != RatingGood {
		t.Fatalf("Score() rating = %q, want GOOD", got.Rating)
	}
}

func TestScoreNACountsTowardTotalEarnsZero(t *testing.T) {
	items := []ScoredItem{
		{ItemID: 1, Points: 10},
		{ItemID: 2, Points: 10},
	}
	responses := map[uint64]ResponseValue{
		1: ResponsePass,
		2: ResponseNA,
	}

	got := Score(responses, items, DefaultRatingThresholds())

	if got.TotalPoints != 20 {
		t.Fatalf("Score() total = %d, want 20 (na answered, counts toward total)", got.TotalPoints)
	}
	if got.EarnedPoints != 10 {
		t.Fatalf("Score() earned = %d, want 10 (na earns zero)", got.EarnedPoints)
	}
}

func TestScoreNoAnswersIsZeroPercent(t *testing.T) {
	items := []ScoredItem{{ItemID: 1, Points: 10}}

	got := Score(map[uint64]ResponseValue{}, items, DefaultRatingThresholds())

	if got.TotalPoints != 0 || got.EarnedPoints != 0 {
		t.Fatalf("Score() = %d/%d, want 0/0", got.EarnedPoints, got.TotalPoints)
	}
	if got.Percentage != 0 {
		t.Fatalf("Score() percentage = %v, want 0", got.Percentage)
	}
	if got.Rating != RatingNeedsImprovement {
		t.Fatalf("Score() rating = %q", got.Rating)
	}
}

func TestScoreRoundsToTwoDecimals(t *testing.T) {
	items := []ScoredItem{
		{ItemID: 1, Points: 1},
		{ItemID: 2, Points: 1},
		{ItemID: 3, Points: 1},
	}
	responses := map[uint64]ResponseValue{
		1: ResponsePass,
		2: ResponsePass,
		3: ResponseFail,
	}

	got := Score(responses, items, DefaultRatingThresholds())

	if got.Percentage != 66.67 {
		t.Fatalf("Score() percentage = %v, want 66.67", got.Percentage)
	}
}

func TestRatingForBandBoundaries(t *testing.T) {
	thresholds := DefaultRatingThresholds()

	cases := []struct {
		percentage float64
		want       Rating
	}{
		{100, RatingExcellent},
		{90, RatingExcellent},
		{89.99, RatingGood},
		{75, RatingGood},
		{74.99, RatingFair},
		{60, RatingFair},
		{59.99, RatingNeedsImprovement},
		{0, RatingNeedsImprovement},
	}
	for _, tc := range cases {
		if got := thresholds.RatingFor(tc.percentage); got != tc.want {
			t.Fatalf("RatingFor(%v) = %q, want %q", tc.percentage, got, tc.want)
		}
	}
}
