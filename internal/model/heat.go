package model

import "time"

// Heat score band boundaries, expressed in days since last use.
// The bands mirror how the catalog UI groups sites: recently used sites
// run hot, sites untouched for months go cold.
const (
	heatHotDays  = 3   // used within 3 days: score 70-100
	heatWarmDays = 14  // used within 14 days: score 30-69
	heatColdDays = 180 // used within 180 days: score 0-29
)

// HeatLabel classifies a heat score for display.
type HeatLabel string

// Heat labels.
const (
	HeatHot  HeatLabel = "hot"
	HeatWarm HeatLabel = "warm"
	HeatCold HeatLabel = "cold"
)

// LabelForHeat returns the display label for a heat score.
func LabelForHeat(score float64) HeatLabel {
	switch {
	case score >= 70:
		return HeatHot
	case score >= 30:
		return HeatWarm
	default:
		return HeatCold
	}
}

// HeatScore derives the popularity metric in [0,100] from usage recency.
// The score decays linearly within each band:
//
//	used within  3 days: 70-100
//	used within 14 days: 30-69
//	used within 180 days: 0-29
//	never used or older:  0
//
// The metric is orthogonal to search ranking; it only feeds display and
// sampling diversity.
func HeatScore(lastUsedAt *time.Time, now time.Time) float64 {
	if lastUsedAt == nil {
		return 0
	}
	age := now.Sub(*lastUsedAt)
	if age < 0 {
		// Clock skew: treat future timestamps as just-used.
		return 100
	}

	days := age.Hours() / 24
	switch {
	case days <= heatHotDays:
		return 100 - (days/heatHotDays)*30
	case days <= heatWarmDays:
		return 69 - ((days-heatHotDays)/(heatWarmDays-heatHotDays))*39
	case days <= heatColdDays:
		return 29 - ((days-heatWarmDays)/(heatColdDays-heatWarmDays))*29
	default:
		return 0
	}
}
