package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/internal/services"
)

// Handlers bundles the HTTP handlers with their service dependencies.
type Handlers struct {
	recommendations *RecommendationHandler
	health          *HealthHandler
}

func New(recSvc *services.RecommendationService, healthSvc *services.HealthService, logger *logrus.Logger) *Handlers {
	return &Handlers{
		recommendations: NewRecommendationHandler(recSvc, logger),
		health:          NewHealthHandler(healthSvc),
	}
}

func (h *Handlers) Recommendations() *RecommendationHandler { return h.recommendations }
func (h *Handlers) Health() *HealthHandler                  { return h.health }
