package recommender

import (
	"sort"
	"strings"

	"github.com/calier/phonerec/pkg/models"
)

// Brand resolution confidence levels per match type.
const (
	confidenceExact    = 1.0
	confidenceClosest  = 0.7
	confidenceFallback = 0.3

	// fuzzyCutoff and maxSuggestions are behavioral constants: brands whose
	// similarity ratio falls below the cutoff are never suggested, and at
	// most three candidates are surfaced.
	fuzzyCutoff    = 0.6
	maxSuggestions = 3
)

// NormalizeBrand canonicalizes a user brand string for matching.
func NormalizeBrand(brand string) string {
	return strings.ToLower(strings.TrimSpace(brand))
}

// ResolveBrand resolves a free-text brand against the catalog: exact match
// first, then fuzzy (ratio cutoff 0.6, best of up to three candidates), then
// fallback with no filter applied. Pure function; the returned slice shares
// backing rows with the input but the input is never mutated.
func ResolveBrand(userBrand string, rows []models.CatalogRow) (models.BrandResolution, []models.CatalogRow) {
	if len(rows) == 0 {
		return models.BrandResolution{
			MatchType:  models.MatchFallback,
			Confidence: 0.0,
		}, nil
	}

	norm := NormalizeBrand(userBrand)

	// Distinct normalized brands in appearance order; remember the original
	// casing of each brand's first occurrence.
	var brands []string
	display := make(map[string]string)
	for _, row := range rows {
		b := NormalizeBrand(row.Brand)
		if _, ok := display[b]; !ok {
			display[b] = row.Brand
			brands = append(brands, b)
		}
	}

	if norm != "" {
		if _, ok := display[norm]; ok {
			return models.BrandResolution{
				ResolvedBrand: display[norm],
				MatchType:     models.MatchExact,
				Confidence:    confidenceExact,
			}, filterByBrand(rows, norm)
		}

		if matches := closeMatches(norm, brands, maxSuggestions, fuzzyCutoff); len(matches) > 0 {
			return models.BrandResolution{
				ResolvedBrand: display[matches[0]],
				MatchType:     models.MatchClosest,
				Confidence:    confidenceClosest,
				Suggestions:   matches,
			}, filterByBrand(rows, matches[0])
		}
	}

	suggestions := brands
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return models.BrandResolution{
		MatchType:   models.MatchFallback,
		Confidence:  confidenceFallback,
		Suggestions: suggestions,
	}, rows
}

func filterByBrand(rows []models.CatalogRow, norm string) []models.CatalogRow {
	var out []models.CatalogRow
	for _, row := range rows {
		if NormalizeBrand(row.Brand) == norm {
			out = append(out, row)
		}
	}
	return out
}

// closeMatches returns up to n candidates whose similarity ratio to the
// input meets the cutoff, ordered by descending ratio (ties keep candidate
// order).
func closeMatches(input string, candidates []string, n int, cutoff float64) []string {
	type scored struct {
		s     string
		ratio float64
	}
	var hits []scored
	for _, c := range candidates {
		if r := similarityRatio(input, c); r >= cutoff {
			hits = append(hits, scored{c, r})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].ratio > hits[j].ratio })

	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.s
	}
	return out
}

// similarityRatio is a normalized Levenshtein similarity in [0,1]:
// 1 - distance/maxLen.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
