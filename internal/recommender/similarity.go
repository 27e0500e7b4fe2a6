package recommender

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// normEpsilon keeps L2 normalization defined for all-zero rows.
const normEpsilon = 1e-8

// NormalizeRows L2-normalizes every row of the matrix in place and returns
// it.
func NormalizeRows(x *mat.Dense) *mat.Dense {
	rows, cols := x.Dims()
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		norm := floats.Norm(row, 2) + normEpsilon
		for j := 0; j < cols; j++ {
			row[j] /= norm
		}
	}
	return x
}

// NormalizeVector returns an L2-normalized copy of the vector.
func NormalizeVector(v []float64) []float64 {
	out := make([]float64, len(v))
	norm := floats.Norm(v, 2) + normEpsilon
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// CosineSimilarities computes the cosine similarity of each row of x against
// the user vector. Both sides must already be scaled with the shared scaler;
// x's rows and u are expected to be L2-normalized, so the similarity reduces
// to a dot product.
func CosineSimilarities(x *mat.Dense, u []float64) []float64 {
	rows, cols := x.Dims()
	sims := make([]float64, rows)
	if cols != len(u) {
		return sims
	}
	for i := 0; i < rows; i++ {
		sims[i] = floats.Dot(x.RawRowView(i), u)
	}
	return sims
}

// CosineSimilarity computes the cosine similarity of two raw vectors,
// normalizing both sides.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	dot := floats.Dot(a, b)
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	denom := na*nb + normEpsilon
	if math.IsNaN(dot) {
		return 0
	}
	return dot / denom
}
