package recommender

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/pkg/models"
)

// SemanticEngine ranks the candidate pool by embedding similarity between a
// natural-language query and a short per-row description. The encoder is an
// external collaborator; its failures propagate to the caller unchanged.
type SemanticEngine struct {
	encoder TextEncoder
	logger  *logrus.Logger
}

func NewSemanticEngine(encoder TextEncoder, logger *logrus.Logger) *SemanticEngine {
	return &SemanticEngine{encoder: encoder, logger: logger}
}

func (e *SemanticEngine) Name() string { return EngineSemantic }

func (e *SemanticEngine) Recommend(ctx context.Context, pool []models.CatalogRow, query models.Query, topN int) (*models.Recommendation, error) {
	if topN <= 0 {
		topN = 5
	}
	if len(pool) == 0 {
		return &models.Recommendation{}, nil
	}
	if e.encoder == nil {
		return nil, fmt.Errorf("no text encoder configured")
	}

	texts := make([]string, len(pool)+1)
	texts[0] = query.NLQuery
	for i, row := range pool {
		texts[i+1] = DescribeRow(row)
	}

	vectors, err := e.encoder.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("encoding failed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("encoder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	queryVec := vectors[0]

	type candidate struct {
		row   models.CatalogRow
		score float64
	}
	candidates := make([]candidate, len(pool))
	for i, row := range pool {
		candidates[i] = candidate{row: row, score: CosineSimilarity(vectors[i+1], queryVec)}
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
		}).Debug("Semantic ranking completed")
	}

	return &models.Recommendation{Items: items}, nil
}

// DescribeRow renders the short description text encoded for semantic
// matching.
func DescribeRow(row models.CatalogRow) string {
	return fmt.Sprintf("%s %s %.0fMP camera %.0fmAh battery",
		row.Brand, row.Model, row.CamResolution, row.Battery)
}
