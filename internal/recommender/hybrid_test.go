package recommender

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calier/phonerec/internal/catalog"
	"github.com/calier/phonerec/pkg/models"
)

func hybridFixture(t *testing.T) *HybridEngine {
	t.Helper()

	rows := []models.CatalogRow{
		{Brand: "Acme", Model: "X1", Price: 500, CamResolution: 50, Battery: 4500, RAM: 8, DisplaySize: 6.2, Weight: 180, ReleaseYear: 2024},
		{Brand: "Acme", Model: "X1 Lite", Price: 350, CamResolution: 48, Battery: 4000, RAM: 6, DisplaySize: 6.4, Weight: 190, ReleaseYear: 2023},
		{Brand: "Bolt", Model: "Nova 9", Price: 700, CamResolution: 108, Battery: 5000, RAM: 12, DisplaySize: 6.7, Weight: 205, ReleaseYear: 2024},
		{Brand: "Corix", Model: "C3", Price: 200, CamResolution: 13, Battery: 3500, RAM: 4, DisplaySize: 6.0, Weight: 175, ReleaseYear: 2021},
	}
	store := catalog.NewStore(rows, nil)

	scaler := catalog.NewMinMaxScaler()
	require.NoError(t, scaler.Fit(catalog.DenseMatrix(catalog.Matrix(store.Rows()))))

	return NewHybridEngine(store, scaler, nil)
}

func TestHybridEngine_ExactBrand(t *testing.T) {
	engine := hybridFixture(t)

	query := models.Query{Preference: models.PreferenceInput{
		Brand: "acme", Price: 500, CamResolution: 48, Battery: 4000,
		RAM: 8, DisplaySize: 6.2, Weight: 180, ReleaseYear: 2024,
		PerformanceProfile: models.ProfileBalanced,
	}}

	rec, err := engine.Recommend(context.Background(), nil, query, 5)
	require.NoError(t, err)
	require.NotNil(t, rec.BrandInfo)

	assert.Equal(t, models.MatchExact, rec.BrandInfo.MatchType)
	assert.Equal(t, 1.0, rec.BrandInfo.Confidence)
	assert.Equal(t, "Acme", rec.BrandInfo.ResolvedBrand)

	require.Len(t, rec.Items, 2)
	for _, item := range rec.Items {
		assert.Equal(t, "Acme", item.Brand)
		assert.NotEmpty(t, item.FeatureScores)
	}
	// X1 matches the preference far better than X1 Lite.
	assert.Equal(t, "X1", rec.Items[0].Model)
	assert.Greater(t, rec.Items[0].MatchScore, rec.Items[1].MatchScore)
}

func TestHybridEngine_ScoresOrderedDescending(t *testing.T) {
	engine := hybridFixture(t)

	query := models.Query{Preference: models.PreferenceInput{
		Price: 600, CamResolution: 50, Battery: 4500, RAM: 8,
	}}

	rec, err := engine.Recommend(context.Background(), nil, query, 10)
	require.NoError(t, err)
	require.Len(t, rec.Items, 4)

	for i := 1; i < len(rec.Items); i++ {
		assert.GreaterOrEqual(t, rec.Items[i-1].MatchScore, rec.Items[i].MatchScore)
	}
	for _, item := range rec.Items {
		assert.LessOrEqual(t, item.MatchScore, 1.0)
	}
}

func TestHybridEngine_UnknownBrandFallsBack(t *testing.T) {
	engine := hybridFixture(t)

	query := models.Query{Preference: models.PreferenceInput{Brand: "zzzzzz", Price: 500}}

	rec, err := engine.Recommend(context.Background(), nil, query, 10)
	require.NoError(t, err)

	assert.Equal(t, models.MatchFallback, rec.BrandInfo.MatchType)
	assert.Equal(t, 0.3, rec.BrandInfo.Confidence)
	assert.Len(t, rec.Items, 4)
	assert.Equal(t, []string{"acme", "bolt", "corix"}, rec.BrandInfo.Suggestions)
}

func TestHybridEngine_MisspelledBrand(t *testing.T) {
	engine := hybridFixture(t)

	query := models.Query{Preference: models.PreferenceInput{Brand: "Acme ", Price: 400}}
	rec, err := engine.Recommend(context.Background(), nil, query, 10)
	require.NoError(t, err)
	assert.Equal(t, models.MatchExact, rec.BrandInfo.MatchType)

	query.Preference.Brand = "Acmee"
	rec, err = engine.Recommend(context.Background(), nil, query, 10)
	require.NoError(t, err)
	assert.Equal(t, models.MatchClosest, rec.BrandInfo.MatchType)
	assert.Equal(t, 0.7, rec.BrandInfo.Confidence)
	assert.Equal(t, "Acme", rec.BrandInfo.ResolvedBrand)
}

func TestHybridEngine_TopNTruncation(t *testing.T) {
	engine := hybridFixture(t)

	query := models.Query{Preference: models.PreferenceInput{Price: 500}}

	rec, err := engine.Recommend(context.Background(), nil, query, 2)
	require.NoError(t, err)
	assert.Len(t, rec.Items, 2)

	t.Run("non-positive topN uses default", func(t *testing.T) {
		rec, err := engine.Recommend(context.Background(), nil, query, 0)
		require.NoError(t, err)
		assert.Len(t, rec.Items, 4)
	})
}

func TestHybridEngine_WeightsOverride(t *testing.T) {
	engine := hybridFixture(t)

	pref := models.PreferenceInput{Price: 250, CamResolution: 100}
	allCamera := models.FeatureWeights{"cam_resolution": 1.0}

	rec, err := engine.Recommend(context.Background(), nil, models.Query{Preference: pref, Weights: allCamera}, 10)
	require.NoError(t, err)
	require.Len(t, rec.Items, 4)

	// With all weight on the camera, the 108MP phone outranks the cheap one.
	assert.Equal(t, "Nova 9", rec.Items[0].Model)
}

func TestHybridEngine_SingleRowCatalog(t *testing.T) {
	rows := []models.CatalogRow{
		{Brand: "Acme", Model: "X1", Price: 600, CamResolution: 48, Battery: 4500, RAM: 8, DisplaySize: 6.1, Weight: 180, ReleaseYear: 2023},
	}
	store := catalog.NewStore(rows, nil)
	scaler := catalog.NewMinMaxScaler()
	require.NoError(t, scaler.Fit(catalog.DenseMatrix(catalog.Matrix(store.Rows()))))
	engine := NewHybridEngine(store, scaler, nil)

	query := models.Query{Preference: models.PreferenceInput{
		Price: 700, CamResolution: 48, Battery: 5000, RAM: 8,
		DisplaySize: 6.5, Weight: 180, ReleaseYear: 2023,
		PerformanceProfile: models.ProfileBalanced,
	}}

	rec, err := engine.Recommend(context.Background(), nil, query, 1)
	require.NoError(t, err)
	require.Len(t, rec.Items, 1)

	assert.Equal(t, "X1", rec.Items[0].Model)
	assert.Greater(t, rec.Items[0].MatchScore, 0.0)
	assert.Less(t, rec.Items[0].MatchScore, 1.0)
}

func TestHybridEngine_Deterministic(t *testing.T) {
	engine := hybridFixture(t)

	query := models.Query{Preference: models.PreferenceInput{
		Price: 450, Battery: 4200, RAM: 6, PerformanceProfile: models.ProfileBattery,
	}}

	first, err := engine.Recommend(context.Background(), nil, query, 10)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := engine.Recommend(context.Background(), nil, query, 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
