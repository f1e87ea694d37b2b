package service

import (
	"sort"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// ─── Scoring weights ────────────────────────────────────────
//
// score = rating×10 + priceComponent + preference bonuses
//
//	priceComponent: (50000 − totalPrice) / 1000 on budget trips
//	                (cheaper is strictly better), rating×5 otherwise
//	                (quality outranks price off-budget)
//	bonuses:        safetyScore×2 when the trip asks for safety,
//	                accessibilityScore×2 when accessibility needs are
//	                stated — each only if the hotel carries the score
const (
	ratingWeight           = 10
	offBudgetQualityWeight = 5
	priceScaleDivisor      = 1000
	priceScoreBase         = 50000
	preferenceWeight       = 2
)

// OptionRanker orders bundles best-first for a trip.
type OptionRanker struct{}

// Rank returns the options sorted by descending score. The sort is
// stable, so equal-score options keep generator order. The input slice
// is not modified.
func (OptionRanker) Rank(options []model.TripOption, trip *model.TripRequest) []model.TripOption {
	ranked := make([]model.TripOption, len(options))
	copy(ranked, options)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i], trip) > Score(ranked[j], trip)
	})
	return ranked
}

// Score computes the documented ranking score for one bundle.
func Score(opt model.TripOption, trip *model.TripRequest) float64 {
	score := opt.Hotel.Rating * ratingWeight

	if trip.BudgetBand == model.BandBudget {
		score += float64(priceScoreBase-opt.TotalPrice) / priceScaleDivisor
	} else {
		score += opt.Hotel.Rating * offBudgetQualityWeight
	}

	if p := trip.Preferences; p != nil {
		if p.SafetyPriority && opt.Hotel.SafetyScore != nil {
			score += *opt.Hotel.SafetyScore * preferenceWeight
		}
		if len(p.AccessibilityNeeds) > 0 && opt.Hotel.AccessibilityScore != nil {
			score += *opt.Hotel.AccessibilityScore * preferenceWeight
		}
	}
	return score
}
