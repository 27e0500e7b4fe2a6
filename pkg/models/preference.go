package models

// PerformanceProfile selects a weight-adjustment preset.
type PerformanceProfile string

const (
	ProfileBalanced    PerformanceProfile = "balanced"
	ProfilePerformance PerformanceProfile = "performance"
	ProfileBattery     PerformanceProfile = "battery"
)

// PreferenceInput is one normalized user query. A numeric field left at its
// zero value means "no preference", not a literal target of zero; the rule
// scorer falls back to a neutral 0.5 for such fields. This sentinel collision
// is a deliberate, preserved behavior: a literal zero preference cannot be
// expressed.
type PreferenceInput struct {
	Brand              string             `json:"brand,omitempty"`
	Price              float64            `json:"price"`
	CamResolution      float64            `json:"cam_resolution"`
	Battery            float64            `json:"battery"`
	RAM                float64            `json:"ram"`
	DisplaySize        float64            `json:"display_size"`
	Weight             float64            `json:"weight"`
	ReleaseYear        int                `json:"release_year"`
	PerformanceProfile PerformanceProfile `json:"performance_profile"`
}

// FeatureVector returns the preference's numeric fields in canonical order.
// Unspecified fields participate as literal zeros.
func (p PreferenceInput) FeatureVector() []float64 {
	return []float64{
		p.Price,
		p.CamResolution,
		p.Battery,
		p.RAM,
		p.DisplaySize,
		p.Weight,
		float64(p.ReleaseYear),
	}
}

// IsColdStart reports whether every numeric field is at its unspecified
// sentinel.
func (p PreferenceInput) IsColdStart() bool {
	for _, v := range p.FeatureVector() {
		if v != 0 {
			return false
		}
	}
	return true
}

// Query bundles everything an engine needs to rank a candidate pool.
type Query struct {
	Preference PreferenceInput `json:"preference"`
	NLQuery    string          `json:"nl_query,omitempty"`

	// Weights overrides the profile-derived feature weights when non-nil
	// (e.g. weights inferred from a natural-language query).
	Weights FeatureWeights `json:"weights,omitempty"`
}
