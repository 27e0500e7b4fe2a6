package recommender

import "github.com/calier/phonerec/pkg/models"

// penaltyFloor keeps plausibility adjustments from ever zeroing a candidate.
const penaltyFloor = 0.6

// PlausibilityPenalty returns a multiplicative adjustment in [0.6, 1.0] for
// internally inconsistent preference/catalog combinations. Penalties are
// independent and additive before flooring.
func PlausibilityPenalty(row models.CatalogRow, pref models.PreferenceInput) float64 {
	penalty := 1.0

	// Flagship camera expectations at a low budget are implausible.
	if pref.Price < 400 && row.CamResolution > 100 {
		penalty -= 0.10
	}

	if pref.PerformanceProfile == models.ProfilePerformance && row.RAM < 6 {
		penalty -= 0.15
	}

	// Large-battery phones are heavy; a heavy row clashes with an
	// unacknowledged big-battery preference.
	if pref.Battery > 5000 && row.Weight > 220 {
		penalty -= 0.05
	}

	if penalty < penaltyFloor {
		return penaltyFloor
	}
	return penalty
}
