package recommender

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/calier/phonerec/pkg/models"
)

// Explanation thresholds: a top feature needs a strong match to produce a
// reason; pros and cons are classified independently of the top-K ranking.
const (
	reasonThreshold = 0.6
	proThreshold    = 0.7
	conThreshold    = 0.4
)

var featureReasons = map[string]string{
	"price":          "It fits well within your budget.",
	"cam_resolution": "The camera quality aligns with your expectations.",
	"battery":        "The battery capacity supports long daily usage.",
	"ram":            "It provides smooth multitasking performance.",
	"display_size":   "The screen size matches your viewing preference.",
	"weight":         "Its weight matches your comfort preference.",
	"release_year":   "It is relatively recent compared to other options.",
}

var titleCaser = cases.Title(language.English)

// Explain turns per-feature match scores into display reasons and a
// structured pros/cons split. Features scoring below 0.6 never produce a
// reason, even inside the top K, so fewer than topK reasons (or none) is a
// normal outcome.
func Explain(scores models.FeatureScoreSet, topK int) models.Explanation {
	out := models.Explanation{
		TopFeatures: []string{},
		Pros:        []string{},
		Cons:        []string{},
	}
	if len(scores) == 0 {
		return out
	}

	ordered := orderedFeatures(scores)

	ranked := make([]string, len(ordered))
	copy(ranked, ordered)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	for _, feature := range ranked {
		if scores[feature] < reasonThreshold {
			continue
		}
		if reason, ok := featureReasons[feature]; ok {
			out.TopFeatures = append(out.TopFeatures, reason)
		} else {
			out.TopFeatures = append(out.TopFeatures, featureLabel(feature)+" closely matches your preference.")
		}
	}

	for _, feature := range ordered {
		switch score := scores[feature]; {
		case score >= proThreshold:
			out.Pros = append(out.Pros, featureLabel(feature))
		case score <= conThreshold:
			out.Cons = append(out.Cons, featureLabel(feature))
		}
	}

	return out
}

// orderedFeatures returns the score set's keys deterministically: canonical
// features first, then any extras alphabetically.
func orderedFeatures(scores models.FeatureScoreSet) []string {
	var out []string
	seen := make(map[string]bool, len(scores))
	for _, f := range models.FeatureNames {
		if _, ok := scores[f]; ok {
			out = append(out, f)
			seen[f] = true
		}
	}

	var extras []string
	for f := range scores {
		if !seen[f] {
			extras = append(extras, f)
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}

func featureLabel(feature string) string {
	return titleCaser.String(strings.ReplaceAll(feature, "_", " "))
}
