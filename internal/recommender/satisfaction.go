package recommender

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/calier/phonerec/internal/catalog"
	"github.com/calier/phonerec/pkg/models"
)

// SatisfactionEngine ranks the pool by a pretrained regressor's predicted
// user satisfaction. The model is a black box; the engine only scales its
// inputs and min-max normalizes its outputs.
type SatisfactionEngine struct {
	scaler *catalog.MinMaxScaler
	model  Regressor
	logger *logrus.Logger
}

func NewSatisfactionEngine(scaler *catalog.MinMaxScaler, model Regressor, logger *logrus.Logger) *SatisfactionEngine {
	return &SatisfactionEngine{scaler: scaler, model: model, logger: logger}
}

func (e *SatisfactionEngine) Name() string { return EngineSatisfaction }

func (e *SatisfactionEngine) Recommend(ctx context.Context, pool []models.CatalogRow, query models.Query, topN int) (*models.Recommendation, error) {
	if topN <= 0 {
		topN = 5
	}
	if len(pool) == 0 {
		return &models.Recommendation{}, nil
	}
	if e.model == nil {
		return nil, fmt.Errorf("no satisfaction model configured")
	}

	scaled, err := e.scaler.Transform(catalog.DenseMatrix(catalog.Matrix(pool)))
	if err != nil {
		return nil, fmt.Errorf("feature scaling failed: %w", err)
	}

	features := make([][]float64, len(pool))
	for i := range pool {
		features[i] = mat.Row(nil, i, scaled)
	}

	raw, err := e.model.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("satisfaction prediction failed: %w", err)
	}
	if len(raw) != len(pool) {
		return nil, fmt.Errorf("model returned %d scores for %d rows", len(raw), len(pool))
	}

	scores := normalizeScores(raw)

	type candidate struct {
		row   models.CatalogRow
		score float64
	}
	candidates := make([]candidate, len(pool))
	for i, row := range pool {
		candidates[i] = candidate{row: row, score: scores[i]}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	items := make([]models.RankedResult, len(candidates))
	for i, c := range candidates {
		items[i] = models.RankedResult{
			Brand:         c.row.Brand,
			Model:         c.row.Model,
			MatchScore:    c.score,
			FeatureScores: models.FeatureScoreSet{},
		}
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"pool":    len(pool),
			"results": len(items),
		}).Debug("Satisfaction ranking completed")
	}

	return &models.Recommendation{Items: items}, nil
}

// normalizeScores min-max normalizes predictions to [0,1]; a flat score
// vector maps to 0.5 everywhere.
func normalizeScores(raw []float64) []float64 {
	lo, hi := floats.Min(raw), floats.Max(raw)
	out := make([]float64, len(raw))
	if hi == lo {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range raw {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
