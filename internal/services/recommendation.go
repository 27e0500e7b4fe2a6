package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/internal/catalog"
	"github.com/calier/phonerec/internal/recommender"
	"github.com/calier/phonerec/pkg/models"
)

const popularSuggestionCount = 5

// RecommendationService orchestrates one scoring request: it normalizes the
// input, applies the web layer's soft filters, picks an engine and decorates
// the ranked items with explanations. The catalog and scaler it holds are
// read-only, so concurrent requests need no locking.
type RecommendationService struct {
	catalog        *catalog.Store
	engines        map[string]recommender.Engine
	cache          *redis.Client
	cacheTTL       time.Duration
	assets         *AssetJobManager
	metrics        *Metrics
	defaultTopN    int
	coldStartCount int
	logger         *logrus.Logger
}

func NewRecommendationService(
	store *catalog.Store,
	engines map[string]recommender.Engine,
	cache *redis.Client,
	cacheTTL time.Duration,
	assets *AssetJobManager,
	metrics *Metrics,
	defaultTopN int,
	coldStartCount int,
	logger *logrus.Logger,
) *RecommendationService {
	if defaultTopN <= 0 {
		defaultTopN = 5
	}
	if coldStartCount <= 0 {
		coldStartCount = 5
	}
	return &RecommendationService{
		catalog:        store,
		engines:        engines,
		cache:          cache,
		cacheTTL:       cacheTTL,
		assets:         assets,
		metrics:        metrics,
		defaultTopN:    defaultTopN,
		coldStartCount: coldStartCount,
		logger:         logger,
	}
}

// NormalizeMode maps the public mode selector to an engine name. "classic"
// is a legacy alias for hybrid; unknown modes degrade to hybrid.
func NormalizeMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "classic", recommender.EngineHybrid:
		return recommender.EngineHybrid
	case recommender.EngineSemantic:
		return recommender.EngineSemantic
	case recommender.EngineSatisfaction:
		return recommender.EngineSatisfaction
	default:
		return recommender.EngineHybrid
	}
}

// NormalizePreference converts the public request body into the engine
// preference struct. Values are passed through as-is: negative or otherwise
// malformed numbers are the caller's responsibility and propagate into
// scoring.
func NormalizePreference(req models.RecommendationRequest) models.PreferenceInput {
	profile := models.PerformanceProfile(strings.ToLower(strings.TrimSpace(req.Performance)))
	if profile == "" {
		profile = models.ProfileBalanced
	}
	return models.PreferenceInput{
		Brand:              strings.TrimSpace(req.Brand),
		Price:              req.Price,
		CamResolution:      req.Camera,
		Battery:            req.Battery,
		RAM:                req.RAM,
		DisplaySize:        req.DisplaySize,
		Weight:             req.Weight,
		ReleaseYear:        req.ReleaseYear,
		PerformanceProfile: profile,
	}
}

// Recommend executes one scoring request end to end. It only returns an
// error for engine failures; every recoverable condition (missing dataset,
// over-constrained filters) degrades into a well-formed response.
func (s *RecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	mode := NormalizeMode(req.Mode)
	pref := NormalizePreference(req)

	topN := req.Count
	if topN <= 0 {
		topN = s.defaultTopN
	}

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ScoringDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
		}
	}()

	if s.catalog == nil || s.catalog.Len() == 0 {
		s.count(mode, OutcomeDatasetUnavailable)
		return &models.RecommendationResponse{
			EngineMode:  mode,
			Results:     []models.RankedResult{},
			Error:       "Dataset unavailable",
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	cacheKey := s.cacheKey(pref, req.NLQuery, mode, topN)
	if cached := s.cachedResponse(ctx, cacheKey); cached != nil {
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		s.count(mode, OutcomeOK)
		return cached, nil
	}

	pool := s.filterPool(pref)
	if len(pool) == 0 {
		s.count(mode, OutcomeNoCandidates)
		return &models.RecommendationResponse{
			EngineMode: mode,
			Results:    []models.RankedResult{},
			BrandInfo: &models.BrandResolution{
				Error:       "No phones found for this brand and price range",
				Suggestions: s.catalog.PopularBrands(popularSuggestionCount),
			},
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	pool = dedupeStorageVariants(pool)

	var rec *models.Recommendation
	if pref.IsColdStart() && mode == recommender.EngineHybrid {
		rec = s.coldStartRecommendation(pool)
	} else {
		engine, ok := s.engines[mode]
		if !ok || engine == nil {
			s.count(mode, OutcomeError)
			return nil, fmt.Errorf("engine %q is not configured", mode)
		}

		query := models.Query{Preference: pref, NLQuery: req.NLQuery}
		if mode == recommender.EngineHybrid && req.NLQuery != "" {
			query.Weights = recommender.InferIntentWeights(req.NLQuery)
		}

		var err error
		rec, err = engine.Recommend(ctx, pool, query, topN)
		if err != nil {
			s.count(mode, OutcomeError)
			return nil, fmt.Errorf("engine %s failed: %w", mode, err)
		}
	}

	for i := range rec.Items {
		if len(rec.Items[i].FeatureScores) > 0 {
			explanation := recommender.Explain(rec.Items[i].FeatureScores, 3)
			rec.Items[i].Explanation = &explanation
		}
	}

	response := &models.RecommendationResponse{
		EngineMode:  mode,
		Results:     rec.Items,
		BrandInfo:   rec.BrandInfo,
		GeneratedAt: time.Now().UTC(),
	}

	s.storeResponse(ctx, cacheKey, response)

	if s.assets != nil && len(rec.Items) > 0 {
		s.assets.EnqueuePreview(rec.Items[0].Brand, rec.Items[0].Model)
	}

	s.count(mode, OutcomeOK)
	return response, nil
}

// filterPool applies the soft constraints: exact brand, ±30% price band and
// a two-year grace window on the requested release year.
func (s *RecommendationService) filterPool(pref models.PreferenceInput) []models.CatalogRow {
	var pool []models.CatalogRow
	brand := strings.ToLower(pref.Brand)

	for _, row := range s.catalog.Rows() {
		if brand != "" && strings.ToLower(row.Brand) != brand {
			continue
		}
		if pref.Price > 0 && (row.Price < pref.Price*0.7 || row.Price > pref.Price*1.3) {
			continue
		}
		if pref.ReleaseYear > 0 && row.ReleaseYear < pref.ReleaseYear-2 {
			continue
		}
		pool = append(pool, row)
	}
	return pool
}

var storageVariantPattern = regexp.MustCompile(`(?i)\b\d+\s?(GB|TB)\b`)

// BaseModel strips storage-variant suffixes ("128GB", "1 TB") from a model
// name.
func BaseModel(model string) string {
	return strings.TrimSpace(storageVariantPattern.ReplaceAllString(model, ""))
}

// dedupeStorageVariants keeps the first row per base model so a popular
// phone's storage tiers don't crowd out the result list.
func dedupeStorageVariants(rows []models.CatalogRow) []models.CatalogRow {
	seen := make(map[string]bool, len(rows))
	var out []models.CatalogRow
	for _, row := range rows {
		key := strings.ToLower(row.Brand) + "\x00" + strings.ToLower(BaseModel(row.Model))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

// coldStartRecommendation handles the all-unspecified preference: no signal
// to score on, so return the newest phones with a neutral score.
func (s *RecommendationService) coldStartRecommendation(pool []models.CatalogRow) *models.Recommendation {
	sorted := make([]models.CatalogRow, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReleaseYear > sorted[j].ReleaseYear
	})
	if len(sorted) > s.coldStartCount {
		sorted = sorted[:s.coldStartCount]
	}

	items := make([]models.RankedResult, len(sorted))
	for i, row := range sorted {
		items[i] = models.RankedResult{
			Brand:         row.Brand,
			Model:         row.Model,
			MatchScore:    0.5,
			FeatureScores: models.FeatureScoreSet{},
		}
	}
	return &models.Recommendation{Items: items}
}

func (s *RecommendationService) cacheKey(pref models.PreferenceInput, nlQuery, mode string, topN int) string {
	payload, err := json.Marshal(struct {
		Pref    models.PreferenceInput `json:"pref"`
		NLQuery string                 `json:"nl_query"`
		Mode    string                 `json:"mode"`
		TopN    int                    `json:"top_n"`
	}{pref, nlQuery, mode, topN})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return "phonerec:rec:" + hex.EncodeToString(sum[:])
}

func (s *RecommendationService) cachedResponse(ctx context.Context, key string) *models.RecommendationResponse {
	if s.cache == nil || key == "" {
		return nil
	}

	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WithError(err).Warn("Recommendation cache read failed")
		}
		return nil
	}

	var response models.RecommendationResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil
	}
	response.CacheHit = true
	return &response
}

func (s *RecommendationService) storeResponse(ctx context.Context, key string, response *models.RecommendationResponse) {
	if s.cache == nil || key == "" {
		return
	}

	data, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("Recommendation cache write failed")
	}
}

func (s *RecommendationService) count(mode, outcome string) {
	if s.metrics != nil {
		s.metrics.Requests.WithLabelValues(mode, outcome).Inc()
	}
}
