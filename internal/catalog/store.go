package catalog

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/pkg/models"
)

// Store is the process-wide, read-only catalog. It is loaded once at startup
// and never mutated afterwards, so concurrent scoring requests may read it
// without locking. Each request works on its own filtered copies of the row
// slice.
type Store struct {
	rows   []models.CatalogRow
	brands []string
	counts map[string]int
}

// NewStore builds a store from ingested rows, dropping duplicate brand+model
// pairs (first occurrence wins) and recording distinct brands in appearance
// order.
func NewStore(rows []models.CatalogRow, logger *logrus.Logger) *Store {
	s := &Store{counts: make(map[string]int)}

	seen := make(map[string]struct{}, len(rows))
	seenBrand := make(map[string]struct{})
	for _, row := range rows {
		key := strings.ToLower(row.Brand) + "\x00" + strings.ToLower(row.Model)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		s.rows = append(s.rows, row)

		norm := strings.ToLower(strings.TrimSpace(row.Brand))
		if _, ok := seenBrand[norm]; !ok {
			seenBrand[norm] = struct{}{}
			s.brands = append(s.brands, row.Brand)
		}
		s.counts[norm]++
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"rows":   len(s.rows),
			"brands": len(s.brands),
		}).Info("Catalog loaded")
	}

	return s
}

// Rows returns the full catalog. Callers must not mutate the returned slice.
func (s *Store) Rows() []models.CatalogRow {
	return s.rows
}

func (s *Store) Len() int {
	return len(s.rows)
}

// DistinctBrands returns the catalog's brands in appearance order, using the
// casing of each brand's first occurrence.
func (s *Store) DistinctBrands() []string {
	return s.brands
}

// YearRange returns the min and max release year over the full catalog.
func (s *Store) YearRange() (int, int) {
	if len(s.rows) == 0 {
		return 0, 0
	}
	min, max := s.rows[0].ReleaseYear, s.rows[0].ReleaseYear
	for _, row := range s.rows[1:] {
		if row.ReleaseYear < min {
			min = row.ReleaseYear
		}
		if row.ReleaseYear > max {
			max = row.ReleaseYear
		}
	}
	return min, max
}

// PopularBrands returns up to n brands ordered by row count descending, ties
// broken by appearance order.
func (s *Store) PopularBrands(n int) []string {
	brands := make([]string, len(s.brands))
	copy(brands, s.brands)

	sort.SliceStable(brands, func(i, j int) bool {
		return s.counts[strings.ToLower(strings.TrimSpace(brands[i]))] >
			s.counts[strings.ToLower(strings.TrimSpace(brands[j]))]
	})

	if len(brands) > n {
		brands = brands[:n]
	}
	return brands
}

// Matrix returns the numeric feature matrix of the given rows in canonical
// feature order, one row per catalog row.
func Matrix(rows []models.CatalogRow) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = row.FeatureVector()
	}
	return out
}
