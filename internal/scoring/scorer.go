// Package scoring computes vendor/event compatibility. Each factor is a
// bounded sub-score; missing data on either side degrades that factor to
// zero rather than failing the whole computation, so Score is total over any
// (vendor, event) pair.
package scoring

import (
	"math"
	"strings"

	"popmatch.poplocal.org/internal/models"
)

// SimilarityFunc scores how alike two strings are, in [0,1].
type SimilarityFunc func(a, b string) float64

// Scorer computes ScoreBreakdowns. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	similarity SimilarityFunc
}

// NewScorer creates a Scorer using the given text-similarity function for
// the description factor. A nil function scores descriptions as zero.
func NewScorer(similarity SimilarityFunc) *Scorer {
	return &Scorer{similarity: similarity}
}

// Score computes the full compatibility breakdown for one vendor and one
// event. eventCoords is the event's resolved location; coordinate resolution
// happens at the caller so repeated scoring of the same event does not
// re-geocode.
func (s *Scorer) Score(vendor *models.Vendor, event *models.Event, eventCoords models.Coordinates) models.ScoreBreakdown {
	breakdown := models.ScoreBreakdown{
		EventTypeScore:    eventTypeScore(vendor, event),
		LocationScore:     locationScore(vendor.Coordinates, eventCoords),
		BudgetScore:       budgetScore(vendor, event),
		DemographicsScore: demographicsScore(vendor, event),
		PastEventScore:    pastEventScore(vendor, event),
		HeadcountScore:    headcountScore(vendor, event),
		DaysScore:         daysScore(vendor, event),
		CategoryScore:     categoryScore(vendor, event),
		DescriptionScore:  s.descriptionScore(vendor, event),
	}
	breakdown.Total = breakdown.Sum()
	return breakdown
}

// eventTypeScore awards points proportional to how many of the vendor's
// preferred event types the event carries.
func eventTypeScore(vendor *models.Vendor, event *models.Event) float64 {
	prefs := lowerSet(vendor.EventPreference)
	types := lowerSet(event.Type)
	if len(prefs) == 0 || len(types) == 0 {
		return 0
	}

	matched := 0
	for pref := range prefs {
		if types[pref] {
			matched++
		}
	}
	return float64(matched) / float64(len(prefs)) * models.MaxEventTypeScore
}

// locationScore decays linearly with distance: full points when coincident,
// zero at 200 miles and beyond.
func locationScore(vendorCoords, eventCoords models.Coordinates) float64 {
	if vendorCoords.IsZero() || eventCoords.IsZero() {
		return 0
	}
	distance := HaversineMiles(vendorCoords.Lat, vendorCoords.Lng, eventCoords.Lat, eventCoords.Lng)
	return math.Max(0, models.MaxLocationScore-distance*0.1)
}

// budgetScore is all-or-nothing: the fee either fits the vendor's budget or
// it does not.
func budgetScore(vendor *models.Vendor, event *models.Event) float64 {
	if event.VendorFee <= vendor.Budget.MaxVendorFee {
		return models.MaxBudgetScore
	}
	return 0
}

func demographicsScore(vendor *models.Vendor, event *models.Event) float64 {
	if anyOverlap(vendor.Demographic, event.Demographics) {
		return models.MaxDemographicsScore
	}
	return 0
}

func pastEventScore(vendor *models.Vendor, event *models.Event) float64 {
	for _, past := range vendor.SelectedPastPopups {
		if past == event.Name {
			return models.MaxPastEventScore
		}
	}
	return 0
}

// headcountScore gives full points inside the vendor's preferred band and
// tiers off by how far outside it the event falls.
func headcountScore(vendor *models.Vendor, event *models.Event) float64 {
	size := vendor.PreferredEventSize
	if event.Headcount <= 0 || size.Max <= 0 {
		return 0
	}

	if event.Headcount >= size.Min && event.Headcount <= size.Max {
		return models.MaxHeadcountScore
	}

	distance := event.Headcount - size.Max
	if event.Headcount < size.Min {
		distance = size.Min - event.Headcount
	}

	switch {
	case distance <= 100:
		return 3
	case distance <= 300:
		return 2
	case distance <= 500:
		return 1
	default:
		return 0
	}
}

// daysScore compares the vendor's preferred days against the distinct
// weekday names the event's date range touches (not its total calendar
// days).
func daysScore(vendor *models.Vendor, event *models.Event) float64 {
	preferred := lowerSet(vendor.Schedule.PreferredDays)
	if len(preferred) == 0 || !event.HasDateRange() {
		return 0
	}

	eventDays := DistinctWeekdays(*event.StartDate, *event.EndDate)
	if len(eventDays) == 0 {
		return 0
	}

	matched := 0
	for _, day := range eventDays {
		if preferred[strings.ToLower(day)] {
			matched++
		}
	}
	return float64(matched) / float64(len(eventDays)) * models.MaxDaysScore
}

// categoryScore passes on any category overlap; the "All" sentinel in a
// vendor's profile matches every event.
func categoryScore(vendor *models.Vendor, event *models.Event) float64 {
	for _, cat := range vendor.Categories {
		if strings.EqualFold(strings.TrimSpace(cat), "All") {
			return models.MaxCategoryScore
		}
	}
	if anyOverlap(vendor.Categories, event.Categories) {
		return models.MaxCategoryScore
	}
	return 0
}

func (s *Scorer) descriptionScore(vendor *models.Vendor, event *models.Event) float64 {
	if s.similarity == nil {
		return 0
	}
	sim := s.similarity(strings.ToLower(vendor.Description), strings.ToLower(event.Description))
	return math.Floor(sim * models.MaxDescriptionScore)
}

// lowerSet builds a lookup set of trimmed, lower-cased entries, dropping
// blanks.
func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func anyOverlap(a, b []string) bool {
	set := lowerSet(a)
	if len(set) == 0 {
		return false
	}
	for _, v := range b {
		if set[strings.ToLower(strings.TrimSpace(v))] {
			return true
		}
	}
	return false
}
