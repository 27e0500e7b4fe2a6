package catalog

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MinMaxScaler maps each feature column to [0,1] using the column's observed
// range. It is fitted once on the full catalog at startup and the same
// instance must scale both catalog rows and the user preference vector, so
// that heterogeneous units (price in hundreds, RAM in single digits) become
// comparable. A constant column keeps unit scale, so catalog values map to 0
// and out-of-range inputs pass through as offsets from the column minimum.
type MinMaxScaler struct {
	min    []float64
	scale  []float64
	fitted bool
}

func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{}
}

// Fit learns per-column minima and ranges from the matrix.
func (s *MinMaxScaler) Fit(x *mat.Dense) error {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("cannot fit scaler on empty matrix")
	}

	s.min = make([]float64, cols)
	s.scale = make([]float64, cols)

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		lo, hi := floats.Min(col), floats.Max(col)
		s.min[j] = lo
		if hi > lo {
			s.scale[j] = 1 / (hi - lo)
		} else {
			s.scale[j] = 1
		}
	}

	s.fitted = true
	return nil
}

// Transform scales every row of the matrix. The input is not modified.
func (s *MinMaxScaler) Transform(x *mat.Dense) (*mat.Dense, error) {
	if !s.fitted {
		return nil, fmt.Errorf("scaler is not fitted")
	}
	rows, cols := x.Dims()
	if rows == 0 {
		return &mat.Dense{}, nil
	}
	if cols != len(s.min) {
		return nil, fmt.Errorf("scaler fitted on %d columns, got %d", len(s.min), cols)
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (x.At(i, j)-s.min[j])*s.scale[j])
		}
	}
	return out, nil
}

// TransformVector scales a single feature vector.
func (s *MinMaxScaler) TransformVector(v []float64) ([]float64, error) {
	if !s.fitted {
		return nil, fmt.Errorf("scaler is not fitted")
	}
	if len(v) != len(s.min) {
		return nil, fmt.Errorf("scaler fitted on %d columns, got %d", len(s.min), len(v))
	}

	out := make([]float64, len(v))
	for j, x := range v {
		out[j] = (x - s.min[j]) * s.scale[j]
	}
	return out, nil
}

func (s *MinMaxScaler) Fitted() bool {
	return s.fitted
}

// DenseMatrix converts a row-major [][]float64 into a gonum matrix.
func DenseMatrix(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}
	cols := len(rows[0])
	out := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		out.SetRow(i, row)
	}
	return out
}
