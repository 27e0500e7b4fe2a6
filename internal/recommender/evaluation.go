package recommender

// Offline ranking-quality helpers for evaluating recommendation lists
// against known-relevant items.

// AveragePrecisionAtK computes AP@k for one ranked list. Repeated items earn
// credit only on their first appearance.
func AveragePrecisionAtK(recommended, relevant []string, k int) float64 {
	if len(relevant) == 0 || k <= 0 {
		return 0
	}

	relevantSet := make(map[string]bool, len(relevant))
	for _, item := range relevant {
		relevantSet[item] = true
	}

	// The denominator uses the requested k, not the list length: a short
	// recommendation list is penalized for the items it failed to surface.
	denom := len(relevant)
	if k < denom {
		denom = k
	}

	limit := k
	if limit > len(recommended) {
		limit = len(recommended)
	}

	var score, hits float64
	seen := make(map[string]bool, limit)
	for i, item := range recommended[:limit] {
		if relevantSet[item] && !seen[item] {
			hits++
			score += hits / float64(i+1)
		}
		seen[item] = true
	}

	return score / float64(denom)
}

// MeanAveragePrecision averages AP@k over users. Users with no ground truth
// contribute zero.
func MeanAveragePrecision(recommendations, groundTruth map[string][]string, k int) float64 {
	if len(recommendations) == 0 {
		return 0
	}

	var total float64
	for userID, recommended := range recommendations {
		total += AveragePrecisionAtK(recommended, groundTruth[userID], k)
	}
	return total / float64(len(recommendations))
}
