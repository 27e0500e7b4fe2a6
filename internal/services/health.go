package services

import (
	"github.com/calier/phonerec/internal/catalog"
)

// HealthStatus is the readiness snapshot served by the health endpoint.
type HealthStatus struct {
	Status      string `json:"status"`
	CatalogRows int    `json:"catalog_rows"`
	ScalerReady bool   `json:"scaler_ready"`
}

// HealthService reports readiness from the process-wide catalog and scaler.
type HealthService struct {
	catalog *catalog.Store
	scaler  *catalog.MinMaxScaler
}

func NewHealthService(store *catalog.Store, scaler *catalog.MinMaxScaler) *HealthService {
	return &HealthService{catalog: store, scaler: scaler}
}

func (h *HealthService) CheckHealth() HealthStatus {
	status := HealthStatus{}
	if h.catalog != nil {
		status.CatalogRows = h.catalog.Len()
	}
	if h.scaler != nil {
		status.ScalerReady = h.scaler.Fitted()
	}

	if status.CatalogRows > 0 && status.ScalerReady {
		status.Status = "healthy"
	} else {
		status.Status = "unhealthy"
	}
	return status
}
