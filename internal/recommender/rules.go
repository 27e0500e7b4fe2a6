package recommender

import (
	"math"

	"github.com/calier/phonerec/pkg/models"
)

// neutralScore is used whenever the user left a feature unspecified.
const neutralScore = 0.5

// FeatureScores computes per-feature match scores for one candidate row.
// Every divisor is guarded, so a zero or negative "desired" value yields the
// neutral score instead of a division by zero.
//
// release_year deliberately ignores the requested year: the score is the
// row's linear position within the full catalog's [minYear, maxYear] range,
// a recency bias inherited from the original scoring rules.
func FeatureScores(row models.CatalogRow, pref models.PreferenceInput, minYear, maxYear int) models.FeatureScoreSet {
	scores := make(models.FeatureScoreSet, len(models.FeatureNames))

	if budget := pref.Price; budget > 0 {
		scores["price"] = math.Max(0, 1-math.Abs(row.Price-budget)/budget)
	} else {
		scores["price"] = neutralScore
	}

	// Meeting or exceeding the desired value is fully rewarded, capped at 1.
	scores["cam_resolution"] = atLeastScore(row.CamResolution, pref.CamResolution)
	scores["battery"] = atLeastScore(row.Battery, pref.Battery)
	scores["ram"] = atLeastScore(row.RAM, pref.RAM)

	scores["display_size"] = proximityScore(row.DisplaySize, pref.DisplaySize)
	scores["weight"] = proximityScore(row.Weight, pref.Weight)

	if maxYear > minYear {
		scores["release_year"] = float64(row.ReleaseYear-minYear) / float64(maxYear-minYear)
	} else {
		scores["release_year"] = neutralScore
	}

	return scores
}

func atLeastScore(value, desired float64) float64 {
	if desired <= 0 {
		return neutralScore
	}
	return math.Min(1, value/desired)
}

func proximityScore(value, desired float64) float64 {
	if desired <= 0 {
		return neutralScore
	}
	return math.Max(0, 1-math.Abs(value-desired)/desired)
}
