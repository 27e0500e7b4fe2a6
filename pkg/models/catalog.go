package models

// FeatureNames is the canonical ordering of the seven numeric catalog features.
// Feature vectors, scaler columns and weight maps all follow this order.
var FeatureNames = []string{
	"price",
	"cam_resolution",
	"battery",
	"ram",
	"display_size",
	"weight",
	"release_year",
}

// CatalogRow is one phone model in the catalog. Rows are created by the
// ingestion pipeline, loaded once at startup and never mutated afterwards;
// numeric fields are non-null at rest (missing values are imputed upstream).
type CatalogRow struct {
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Price         float64 `json:"price"`
	CamResolution float64 `json:"cam_resolution"`
	Battery       float64 `json:"battery"`
	RAM           float64 `json:"ram"`
	DisplaySize   float64 `json:"display_size"`
	Weight        float64 `json:"weight"`
	ReleaseYear   int     `json:"release_year"`
	Chipset       string  `json:"chipset,omitempty"`
	DisplayType   string  `json:"display_type,omitempty"`
	Has5G         bool    `json:"has_5g"`
}

// FeatureVector returns the row's numeric features in canonical order.
func (r CatalogRow) FeatureVector() []float64 {
	return []float64{
		r.Price,
		r.CamResolution,
		r.Battery,
		r.RAM,
		r.DisplaySize,
		r.Weight,
		float64(r.ReleaseYear),
	}
}

// FeatureValue returns a single feature by canonical name.
func (r CatalogRow) FeatureValue(name string) float64 {
	switch name {
	case "price":
		return r.Price
	case "cam_resolution":
		return r.CamResolution
	case "battery":
		return r.Battery
	case "ram":
		return r.RAM
	case "display_size":
		return r.DisplaySize
	case "weight":
		return r.Weight
	case "release_year":
		return float64(r.ReleaseYear)
	default:
		return 0
	}
}
