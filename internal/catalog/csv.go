package catalog

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/pkg/models"
)

// csvColumns is the canonical header set produced by the ingestion pipeline.
var csvColumns = []string{
	"model", "brand", "price", "cam_resolution", "battery",
	"ram", "chipset", "has_5g", "display_size", "display_type",
	"weight", "release_year",
}

// LoadCSV reads the catalog from a CSV file written by the ingestion
// pipeline. Unparseable numeric cells are imputed with the column median so
// the core never sees missing values, mirroring the upstream contract.
func LoadCSV(path string, logger *logrus.Logger) ([]models.CatalogRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("catalog file %s is empty", path)
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range csvColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("catalog file %s is missing column %q", path, name)
		}
	}

	rows := make([]models.CatalogRow, 0, len(records)-1)
	var missingYears []int
	var validYears []float64
	for _, rec := range records[1:] {
		get := func(name string) string {
			idx := col[name]
			if idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		row := models.CatalogRow{
			Model:       get("model"),
			Brand:       get("brand"),
			Chipset:     get("chipset"),
			DisplayType: get("display_type"),
			Has5G:       parseBool(get("has_5g")),
		}
		row.Price = parseFloat(get("price"))
		row.CamResolution = parseFloat(get("cam_resolution"))
		row.Battery = parseFloat(get("battery"))
		row.RAM = parseFloat(get("ram"))
		row.DisplaySize = parseFloat(get("display_size"))
		row.Weight = parseFloat(get("weight"))
		if y, err := strconv.Atoi(get("release_year")); err == nil {
			row.ReleaseYear = y
			validYears = append(validYears, float64(y))
		} else {
			missingYears = append(missingYears, len(rows))
		}

		rows = append(rows, row)
	}

	imputed := imputeMissing(rows)
	if len(missingYears) > 0 {
		med := int(median(validYears))
		for _, i := range missingYears {
			rows[i].ReleaseYear = med
		}
		imputed += len(missingYears)
	}
	if imputed > 0 && logger != nil {
		logger.WithField("cells", imputed).Warn("Imputed missing catalog values with column medians")
	}

	return rows, nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// imputeMissing replaces NaN numeric cells with the column median and
// returns the number of cells imputed. A column with no valid values at all
// falls back to zero.
func imputeMissing(rows []models.CatalogRow) int {
	fields := []struct {
		get func(*models.CatalogRow) *float64
	}{
		{func(r *models.CatalogRow) *float64 { return &r.Price }},
		{func(r *models.CatalogRow) *float64 { return &r.CamResolution }},
		{func(r *models.CatalogRow) *float64 { return &r.Battery }},
		{func(r *models.CatalogRow) *float64 { return &r.RAM }},
		{func(r *models.CatalogRow) *float64 { return &r.DisplaySize }},
		{func(r *models.CatalogRow) *float64 { return &r.Weight }},
	}

	imputed := 0
	for _, f := range fields {
		var valid []float64
		for i := range rows {
			if v := *f.get(&rows[i]); !math.IsNaN(v) {
				valid = append(valid, v)
			}
		}
		med := median(valid)
		for i := range rows {
			if p := f.get(&rows[i]); math.IsNaN(*p) {
				*p = med
				imputed++
			}
		}
	}
	return imputed
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
