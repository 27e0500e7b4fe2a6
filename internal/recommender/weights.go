package recommender

import (
	"strings"

	"github.com/calier/phonerec/pkg/models"
)

// BaseWeights returns the default per-feature weights. They sum to 1.0 and
// cover exactly the seven numeric catalog features.
func BaseWeights() models.FeatureWeights {
	return models.FeatureWeights{
		"price":          0.25,
		"cam_resolution": 0.20,
		"battery":        0.15,
		"ram":            0.10,
		"display_size":   0.10,
		"weight":         0.05,
		"release_year":   0.15,
	}
}

// DeriveWeights applies the performance-profile preset to the base weights
// and re-normalizes so the result sums to 1.0. Unrecognized profiles behave
// like balanced.
func DeriveWeights(profile models.PerformanceProfile) models.FeatureWeights {
	weights := BaseWeights()

	switch profile {
	case models.ProfilePerformance:
		weights["ram"] += 0.05
		weights["release_year"] += 0.05
		weights["price"] -= 0.05
	case models.ProfileBattery:
		weights["battery"] += 0.07
		weights["weight"] += 0.03
		weights["price"] -= 0.05
	}

	normalizeWeights(weights)
	return weights
}

// intentKeywords lists the phrases that signal each preference dimension in
// a natural-language query. Order is fixed: damping compounds across
// triggered groups, so iteration must be deterministic.
var intentKeywords = []struct {
	intent   string
	keywords []string
}{
	{"camera", []string{"camera", "photo", "video", "low light"}},
	{"battery", []string{"battery", "long lasting", "all day"}},
	{"performance", []string{"fast", "gaming", "performance"}},
	{"price", []string{"cheap", "budget", "affordable"}},
	{"weight", []string{"light", "compact"}},
	{"display_size", []string{"big screen", "small screen"}},
}

// InferIntentWeights derives feature weights from a natural-language query.
// Each triggered keyword group damps all weights by 15% and boosts its
// target feature; the result is normalized to sum to 1.0.
func InferIntentWeights(query string) models.FeatureWeights {
	weights := models.FeatureWeights{
		"price":          0.15,
		"cam_resolution": 0.15,
		"battery":        0.15,
		"ram":            0.15,
		"display_size":   0.15,
		"weight":         0.10,
		"release_year":   0.15,
	}

	text := strings.ToLower(query)

	for _, group := range intentKeywords {
		triggered := false
		for _, k := range group.keywords {
			if strings.Contains(text, k) {
				triggered = true
				break
			}
		}
		if !triggered {
			continue
		}

		for f := range weights {
			weights[f] *= 0.85
		}
		switch group.intent {
		case "camera":
			weights["cam_resolution"] += 0.25
		case "battery":
			weights["battery"] += 0.25
		case "price":
			weights["price"] += 0.25
		}
	}

	normalizeWeights(weights)
	return weights
}

func normalizeWeights(w models.FeatureWeights) {
	var total float64
	for _, v := range w {
		total += v
	}
	if total == 0 {
		return
	}
	for k, v := range w {
		w[k] = v / total
	}
}
