package recommender

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/internal/catalog"
	"github.com/calier/phonerec/pkg/models"
)

// similarityWeight fixes the blend between embedding similarity and the
// weighted rule score. The 40/60 split is a deliberate bias toward
// rule-based interpretability and is not configurable.
const similarityWeight = 0.4

// HybridEngine blends cosine similarity over scaled feature vectors with
// weighted rule-based per-feature match scores and a plausibility penalty.
// It resolves the brand against the full catalog itself; the pool argument
// of Recommend is ignored, because brand resolution rather than the web
// layer's soft filters selects the hybrid candidate set.
type HybridEngine struct {
	catalog *catalog.Store
	scaler  *catalog.MinMaxScaler
	logger  *logrus.Logger
}

func NewHybridEngine(store *catalog.Store, scaler *catalog.MinMaxScaler, logger *logrus.Logger) *HybridEngine {
	return &HybridEngine{
		catalog: store,
		scaler:  scaler,
		logger:  logger,
	}
}

func (e *HybridEngine) Name() string { return EngineHybrid }

// Recommend is stateless per call: the catalog and scaler are read-only and
// every derived structure is owned by this invocation.
func (e *HybridEngine) Recommend(ctx context.Context, _ []models.CatalogRow, query models.Query, topN int) (*models.Recommendation, error) {
	pref := query.Preference
	if topN <= 0 {
		topN = 5
	}

	brandInfo, pool := ResolveBrand(pref.Brand, e.catalog.Rows())
	if len(pool) == 0 {
		// Never return zero candidates while the unfiltered catalog has
		// rows; an empty pool forces the fallback path.
		pool = e.catalog.Rows()
		brandInfo.MatchType = models.MatchFallback
	}
	if len(pool) == 0 {
		return &models.Recommendation{BrandInfo: &brandInfo}, nil
	}

	sims, err := e.similarities(pool, pref)
	if err != nil {
		return nil, fmt.Errorf("similarity computation failed: %w", err)
	}

	weights := query.Weights
	if weights == nil {
		weights = DeriveWeights(pref.PerformanceProfile)
	}

	minYear, maxYear := e.catalog.YearRange()

	type candidate struct {
		row     models.CatalogRow
		score   float64
		matches models.FeatureScoreSet
	}
	candidates := make([]candidate, len(pool))
	for i, row := range pool {
		matches := FeatureScores(row, pref, minYear, maxYear)

		// Canonical feature order keeps the float sum bit-for-bit stable
		// across calls.
		var ruleScore float64
		for _, f := range models.FeatureNames {
			ruleScore += weights[f] * matches[f]
		}
		ruleScore *= PlausibilityPenalty(row, pref)

		candidates[i] = candidate{
			row:     row,
			score:   similarityWeight*sims[i] + (1-similarityWeight)*ruleScore,
			matches: matches,
		}
	}

	// Stable sort: ties keep original catalog order.
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
			FeatureScores: c.matches,
		}
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"pool":       len(pool),
			"results":    len(items),
			"match_type": brandInfo.MatchType,
		}).Debug("Hybrid ranking completed")
	}

	return &models.Recommendation{BrandInfo: &brandInfo, Items: items}, nil
}

// similarities scales the pool matrix and user vector with the shared
// scaler, row-normalizes both and returns per-row cosine similarities.
func (e *HybridEngine) similarities(pool []models.CatalogRow, pref models.PreferenceInput) ([]float64, error) {
	x, err := e.scaler.Transform(catalog.DenseMatrix(catalog.Matrix(pool)))
	if err != nil {
		return nil, err
	}
	NormalizeRows(x)

	userVec, err := e.scaler.TransformVector(pref.FeatureVector())
	if err != nil {
		return nil, err
	}

	return CosineSimilarities(x, NormalizeVector(userVec)), nil
}
