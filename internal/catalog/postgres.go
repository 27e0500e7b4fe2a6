package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/pkg/models"
)

// Querier is the subset of pgx pool behavior the catalog loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

const catalogQuery = `
	SELECT model, brand, price, cam_resolution, battery,
	       ram, chipset, has_5g, display_size, display_type,
	       weight, release_year
	FROM phone_catalog
	ORDER BY id`

// LoadPostgres reads the catalog table written by the ingestion pipeline.
// Called once at startup; the resulting rows are immutable afterwards.
func LoadPostgres(ctx context.Context, db Querier, logger *logrus.Logger) ([]models.CatalogRow, error) {
	rows, err := db.Query(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var out []models.CatalogRow
	for rows.Next() {
		var row models.CatalogRow
		if err := rows.Scan(
			&row.Model, &row.Brand, &row.Price, &row.CamResolution, &row.Battery,
			&row.RAM, &row.Chipset, &row.Has5G, &row.DisplaySize, &row.DisplayType,
			&row.Weight, &row.ReleaseYear,
		); err != nil {
			if logger != nil {
				logger.WithError(err).Error("Failed to scan catalog row")
			}
			continue
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog row iteration failed: %w", err)
	}

	return out, nil
}
