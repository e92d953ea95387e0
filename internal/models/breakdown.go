package models

// Per-factor point ceilings. The nine factors sum to MaxTotalScore.
const (
	MaxEventTypeScore    = 20.0
	MaxLocationScore     = 20.0
	MaxBudgetScore       = 15.0
	MaxDemographicsScore = 15.0
	MaxPastEventScore    = 5.0
	MaxHeadcountScore    = 5.0
	MaxDaysScore         = 5.0
	MaxCategoryScore     = 20.0
	MaxDescriptionScore  = 5.0

	MaxTotalScore = 110.0
)

// ScoreBreakdown is the per-factor decomposition of one vendor/event
// compatibility score. Total always equals the sum of the nine named fields;
// it is stored rather than derived so the persisted and serialized forms are
// self-contained.
type ScoreBreakdown struct {
	EventTypeScore    float64 `json:"eventTypeScore"`
	LocationScore     float64 `json:"locationScore"`
	BudgetScore       float64 `json:"budgetScore"`
	DemographicsScore float64 `json:"demographicsScore"`
	PastEventScore    float64 `json:"pastEventScore"`
	HeadcountScore    float64 `json:"headcountScore"`
	DaysScore         float64 `json:"daysScore"`
	CategoryScore     float64 `json:"categoryScore"`
	DescriptionScore  float64 `json:"descriptionScore"`
	Total             float64 `json:"total"`
}

// Sum returns the sum of the nine sub-scores.
func (b ScoreBreakdown) Sum() float64 {
	return b.EventTypeScore +
		b.LocationScore +
		b.BudgetScore +
		b.DemographicsScore +
		b.PastEventScore +
		b.HeadcountScore +
		b.DaysScore +
		b.CategoryScore +
		b.DescriptionScore
}

// RankedEvent pairs an event with its computed score for ranking responses.
type RankedEvent struct {
	Event     *Event         `json:"event"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"scoreBreakdown"`
}
