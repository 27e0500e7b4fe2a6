package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calier/phonerec/internal/validation"
)

// ValidationMiddleware validates request bodies against the embedded JSON
// schemas before they reach the handlers.
type ValidationMiddleware struct {
	validator *validation.SchemaValidator
}

func NewValidationMiddleware(validator *validation.SchemaValidator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

// ValidateRecommendationRequest validates the recommend payload.
func (vm *ValidationMiddleware) ValidateRecommendationRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			vm.sendValidationError(c, "BODY_READ_ERROR", "Failed to read request body", nil)
			return
		}

		// Restore request body for downstream handlers
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		if len(bodyBytes) == 0 {
			vm.sendValidationError(c, "EMPTY_BODY", "Request body is required", nil)
			return
		}

		result := vm.validator.ValidateRecommendationRequest(bodyBytes)
		if !result.Valid {
			vm.sendValidationError(c, "VALIDATION_FAILED", "Request body failed validation", result.Errors)
			return
		}

		c.Next()
	}
}

func (vm *ValidationMiddleware) sendValidationError(c *gin.Context, code, message string, details []validation.ValidationError) {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = uuid.New().String()
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":      code,
			"message":   message,
			"details":   details,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"requestId": requestID,
			"path":      c.Request.URL.Path,
			"method":    c.Request.Method,
		},
	})
	c.Abort()
}
