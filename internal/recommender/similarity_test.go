package recommender

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNormalizeVector(t *testing.T) {
	out := NormalizeVector([]float64{3, 4})

	assert.InDelta(t, 0.6, out[0], 1e-6)
	assert.InDelta(t, 0.8, out[1], 1e-6)

	t.Run("zero vector stays finite", func(t *testing.T) {
		out := NormalizeVector([]float64{0, 0, 0})
		for _, v := range out {
			assert.False(t, math.IsNaN(v))
			assert.Equal(t, 0.0, v)
		}
	})
}

func TestNormalizeRows(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{3, 4, 0, 5})
	NormalizeRows(x)

	assert.InDelta(t, 0.6, x.At(0, 0), 1e-6)
	assert.InDelta(t, 0.8, x.At(0, 1), 1e-6)
	assert.InDelta(t, 1.0, x.At(1, 1), 1e-6)
}

func TestCosineSimilarities(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	u := []float64{1, 0}

	sims := CosineSimilarities(x, u)
	assert.InDelta(t, 1.0, sims[0], 1e-6)
	assert.InDelta(t, 0.0, sims[1], 1e-6)

	t.Run("dimension mismatch yields zeros", func(t *testing.T) {
		sims := CosineSimilarities(x, []float64{1, 0, 0})
		assert.Equal(t, []float64{0, 0}, sims)
	})
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-6)
	assert.Equal(t, 0.0, CosineSimilarity([]float64{1, 2}, []float64{1}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
