package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calier/phonerec/internal/catalog"
	"github.com/calier/phonerec/internal/recommender"
	"github.com/calier/phonerec/pkg/models"
)

func serviceRows() []models.CatalogRow {
	return []models.CatalogRow{
		{Brand: "Acme", Model: "X1 128GB", Price: 500, CamResolution: 50, Battery: 4500, RAM: 8, DisplaySize: 6.2, Weight: 180, ReleaseYear: 2024},
		{Brand: "Acme", Model: "X1 256GB", Price: 550, CamResolution: 50, Battery: 4500, RAM: 8, DisplaySize: 6.2, Weight: 180, ReleaseYear: 2024},
		{Brand: "Acme", Model: "X1 Lite", Price: 350, CamResolution: 48, Battery: 4000, RAM: 6, DisplaySize: 6.4, Weight: 190, ReleaseYear: 2023},
		{Brand: "Bolt", Model: "Nova 9", Price: 700, CamResolution: 108, Battery: 5000, RAM: 12, DisplaySize: 6.7, Weight: 205, ReleaseYear: 2024},
		{Brand: "Corix", Model: "C3", Price: 200, CamResolution: 13, Battery: 3500, RAM: 4, DisplaySize: 6.0, Weight: 175, ReleaseYear: 2021},
	}
}

func newTestService(t *testing.T, rows []models.CatalogRow) *RecommendationService {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	store := catalog.NewStore(rows, nil)
	scaler := catalog.NewMinMaxScaler()
	if store.Len() > 0 {
		require.NoError(t, scaler.Fit(catalog.DenseMatrix(catalog.Matrix(store.Rows()))))
	}

	engines := map[string]recommender.Engine{
		recommender.EngineHybrid: recommender.NewHybridEngine(store, scaler, logger),
	}

	return NewRecommendationService(store, engines, nil, 0, nil, nil, 5, 5, logger)
}

func TestNormalizeMode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", recommender.EngineHybrid},
		{"classic", recommender.EngineHybrid},
		{"hybrid", recommender.EngineHybrid},
		{"HYBRID", recommender.EngineHybrid},
		{"semantic", recommender.EngineSemantic},
		{"satisfaction", recommender.EngineSatisfaction},
		{"nonsense", recommender.EngineHybrid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMode(tt.in), tt.in)
	}
}

func TestNormalizePreference(t *testing.T) {
	pref := NormalizePreference(models.RecommendationRequest{
		Brand:       "  Acme ",
		Price:       500,
		Camera:      48,
		Performance: " Performance ",
	})

	assert.Equal(t, "Acme", pref.Brand)
	assert.Equal(t, 500.0, pref.Price)
	assert.Equal(t, 48.0, pref.CamResolution)
	assert.Equal(t, models.ProfilePerformance, pref.PerformanceProfile)

	t.Run("empty performance defaults to balanced", func(t *testing.T) {
		pref := NormalizePreference(models.RecommendationRequest{})
		assert.Equal(t, models.ProfileBalanced, pref.PerformanceProfile)
	})
}

func TestBaseModel(t *testing.T) {
	assert.Equal(t, "X1", BaseModel("X1 128GB"))
	assert.Equal(t, "X1", BaseModel("X1 1 TB"))
	assert.Equal(t, "X1 Pro", BaseModel("X1 Pro"))
	assert.Equal(t, "X1", BaseModel("X1 256gb"))
}

func TestDedupeStorageVariants(t *testing.T) {
	out := dedupeStorageVariants(serviceRows())

	names := make([]string, len(out))
	for i, row := range out {
		names[i] = row.Model
	}
	// 256GB variant collapses into the 128GB row.
	assert.Equal(t, []string{"X1 128GB", "X1 Lite", "Nova 9", "C3"}, names)
}

func TestRecommend_DatasetUnavailable(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{Brand: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, "Dataset unavailable", resp.Error)
	assert.Empty(t, resp.Results)
	assert.Equal(t, recommender.EngineHybrid, resp.EngineMode)
}

func TestRecommend_NoCandidatesSuggestsPopularBrands(t *testing.T) {
	svc := newTestService(t, serviceRows())

	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{Brand: "Nokia", Price: 500})
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
	require.NotNil(t, resp.BrandInfo)
	assert.Equal(t, "No phones found for this brand and price range", resp.BrandInfo.Error)
	assert.Equal(t, []string{"Acme", "Bolt", "Corix"}, resp.BrandInfo.Suggestions)
}

func TestRecommend_PriceBandFilter(t *testing.T) {
	svc := newTestService(t, serviceRows())

	// 5000 +/- 30% leaves no candidates.
	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{Price: 5000})
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
	require.NotNil(t, resp.BrandInfo)
	assert.NotEmpty(t, resp.BrandInfo.Suggestions)
}

func TestRecommend_ColdStart(t *testing.T) {
	svc := newTestService(t, serviceRows())

	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Results)
	for _, item := range resp.Results {
		assert.Equal(t, 0.5, item.MatchScore)
		assert.Nil(t, item.Explanation)
	}
	// Newest first, storage variants already collapsed.
	assert.Equal(t, "X1 128GB", resp.Results[0].Model)
	assert.Len(t, resp.Results, 4)
}

func TestRecommend_HybridEndToEnd(t *testing.T) {
	svc := newTestService(t, serviceRows())

	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{
		Brand:   "acme",
		Price:   500,
		Camera:  48,
		Battery: 4000,
		RAM:     8,
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Results)
	require.NotNil(t, resp.BrandInfo)
	assert.Equal(t, models.MatchExact, resp.BrandInfo.MatchType)
	assert.Equal(t, recommender.EngineHybrid, resp.EngineMode)
	assert.False(t, resp.CacheHit)

	for _, item := range resp.Results {
		assert.Equal(t, "Acme", item.Brand)
		require.NotNil(t, item.Explanation)
		assert.NotNil(t, item.Explanation.Pros)
	}
}

func TestRecommend_CountLimitsResults(t *testing.T) {
	svc := newTestService(t, serviceRows())

	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{Brand: "acme", Price: 450, Count: 1})
	require.NoError(t, err)

	assert.Len(t, resp.Results, 1)
}

func TestRecommend_UnconfiguredEngine(t *testing.T) {
	svc := newTestService(t, serviceRows())

	_, err := svc.Recommend(context.Background(), models.RecommendationRequest{Mode: "semantic", NLQuery: "a camera phone", Price: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRecommend_NLQueryUsesIntentWeights(t *testing.T) {
	svc := newTestService(t, serviceRows())

	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{
		Price:   600,
		NLQuery: "best camera for photos",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
}
