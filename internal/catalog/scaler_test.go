package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMinMaxScaler_FitTransform(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		0, 100,
		5, 200,
		10, 300,
	})

	scaler := NewMinMaxScaler()
	require.NoError(t, scaler.Fit(x))
	assert.True(t, scaler.Fitted())

	out, err := scaler.Transform(x)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, out.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, out.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, out.At(2, 0), 1e-12)
	assert.InDelta(t, 0.0, out.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, out.At(2, 1), 1e-12)

	// Input is not modified.
	assert.Equal(t, 5.0, x.At(1, 0))
}

func TestMinMaxScaler_ConstantColumn(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{
		7, 1,
		7, 3,
	})

	scaler := NewMinMaxScaler()
	require.NoError(t, scaler.Fit(x))

	out, err := scaler.Transform(x)
	require.NoError(t, err)

	// Constant column keeps unit scale: in-range values map to 0.
	assert.InDelta(t, 0.0, out.At(0, 0), 1e-12)
	assert.InDelta(t, 0.0, out.At(1, 0), 1e-12)

	// Out-of-range inputs pass through as offsets from the minimum.
	v, err := scaler.TransformVector([]float64{9, 2})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v[0], 1e-12)
	assert.InDelta(t, 0.5, v[1], 1e-12)
}

func TestMinMaxScaler_Errors(t *testing.T) {
	scaler := NewMinMaxScaler()

	t.Run("fit on empty matrix", func(t *testing.T) {
		assert.Error(t, scaler.Fit(&mat.Dense{}))
	})

	t.Run("transform before fit", func(t *testing.T) {
		_, err := scaler.Transform(mat.NewDense(1, 2, nil))
		assert.Error(t, err)

		_, err = scaler.TransformVector([]float64{1, 2})
		assert.Error(t, err)
	})

	t.Run("column mismatch", func(t *testing.T) {
		require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

		_, err := scaler.Transform(mat.NewDense(1, 3, nil))
		assert.Error(t, err)

		_, err = scaler.TransformVector([]float64{1, 2, 3})
		assert.Error(t, err)
	})
}

func TestDenseMatrix(t *testing.T) {
	out := DenseMatrix([][]float64{{1, 2}, {3, 4}})
	rows, cols := out.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 3.0, out.At(1, 0))

	empty := DenseMatrix(nil)
	rows, cols = empty.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
}
