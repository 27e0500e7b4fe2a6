package recommender

import (
	"context"

	"github.com/calier/phonerec/pkg/models"
)

// Engine names accepted by the web layer's mode selector.
const (
	EngineHybrid       = "hybrid"
	EngineSemantic     = "semantic"
	EngineSatisfaction = "satisfaction"
)

// Engine is a ranking strategy: given a candidate pool and a query, return a
// descending-ranked subset with per-row scores and optional feature
// attributions. All engines share the Recommendation result shape so the web
// layer can swap them transparently.
type Engine interface {
	Name() string
	Recommend(ctx context.Context, pool []models.CatalogRow, query models.Query, topN int) (*models.Recommendation, error)
}

// TextEncoder is an external semantic text encoder: given a list of strings,
// it returns unit-normalized vectors. The core never reimplements the model
// behind it.
type TextEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// Regressor is an external black-box scorer (the pretrained satisfaction
// model): given scaled feature rows, it predicts a score per row.
type Regressor interface {
	Predict(features [][]float64) ([]float64, error)
}
