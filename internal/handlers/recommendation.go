package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/internal/services"
	"github.com/calier/phonerec/pkg/models"
)

type RecommendationHandler struct {
	service *services.RecommendationService
	logger  *logrus.Logger
}

func NewRecommendationHandler(service *services.RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{service: service, logger: logger}
}

// Recommend handles POST /api/v1/recommendations.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	response, err := h.service.Recommend(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"mode":  req.Mode,
			"brand": req.Brand,
		}).Error("Recommendation request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_FAILED",
				"message": "Failed to generate recommendations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
