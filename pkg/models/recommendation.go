package models

import "time"

// FeatureWeights maps feature name to weight. Weights sum to 1.0 after any
// adjustment.
type FeatureWeights map[string]float64

// FeatureScoreSet maps feature name to a [0,1] per-feature match score.
// Engines without feature attribution return an empty set.
type FeatureScoreSet map[string]float64

// MatchType classifies how a brand string was resolved.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchClosest  MatchType = "closest"
	MatchFallback MatchType = "fallback"
)

// BrandResolution describes the outcome of resolving a user brand string
// against the catalog.
type BrandResolution struct {
	ResolvedBrand string    `json:"resolved_brand,omitempty"`
	MatchType     MatchType `json:"match_type"`
	Confidence    float64   `json:"confidence"`
	Suggestions   []string  `json:"suggestions,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// RankedResult is one scored catalog row. MatchScore is not guaranteed to
// stay within [0,1]; malformed preferences propagate as computed.
type RankedResult struct {
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	MatchScore    float64         `json:"match_score"`
	FeatureScores FeatureScoreSet `json:"feature_scores"`
	Explanation   *Explanation    `json:"explanation,omitempty"`
}

// Explanation is the human-readable justification for one ranked result.
type Explanation struct {
	TopFeatures []string `json:"top_features"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

// Recommendation is the output of one engine invocation.
type Recommendation struct {
	BrandInfo *BrandResolution `json:"brand_info,omitempty"`
	Items     []RankedResult   `json:"items"`
}

// RecommendationRequest is the public JSON body of the recommend endpoint.
type RecommendationRequest struct {
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Camera      float64 `json:"camera"`
	Battery     float64 `json:"battery"`
	RAM         float64 `json:"ram"`
	DisplaySize float64 `json:"display_size"`
	Weight      float64 `json:"weight"`
	ReleaseYear int     `json:"release_year"`
	Performance string  `json:"performance"`
	Mode        string  `json:"mode"`
	NLQuery     string  `json:"nl_query"`
	Count       int     `json:"count" binding:"omitempty,min=1,max=50"`
}

// RecommendationResponse is the public JSON response of the recommend
// endpoint. Error is set instead of failing the request when the dataset is
// unavailable; BrandInfo carries a suggestion list when filters leave no
// candidates.
type RecommendationResponse struct {
	EngineMode  string           `json:"engine_mode"`
	Results     []RankedResult   `json:"results"`
	BrandInfo   *BrandResolution `json:"brand_info,omitempty"`
	Error       string           `json:"error,omitempty"`
	CacheHit    bool             `json:"cache_hit"`
	GeneratedAt time.Time        `json:"generated_at"`
}
