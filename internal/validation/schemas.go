package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// recommendationRequestSchema validates the public recommend payload.
// Numeric fields are unconstrained below by design: the core documents that
// malformed values propagate into scoring rather than being rejected, so the
// schema only enforces types and the mode/performance enums.
const recommendationRequestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"brand": {"type": "string", "maxLength": 100},
		"price": {"type": "number"},
		"camera": {"type": "number"},
		"battery": {"type": "number"},
		"ram": {"type": "number"},
		"display_size": {"type": "number"},
		"weight": {"type": "number"},
		"release_year": {"type": "integer"},
		"performance": {
			"type": "string",
			"enum": ["", "balanced", "performance", "battery"]
		},
		"mode": {
			"type": "string",
			"enum": ["", "classic", "hybrid", "semantic", "satisfaction"]
		},
		"nl_query": {"type": "string", "maxLength": 500},
		"count": {"type": "integer", "minimum": 1, "maximum": 50}
	},
	"additionalProperties": false
}`

// ValidationError describes one schema violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating one payload.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// SchemaValidator handles JSON schema validation for API requests.
type SchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewSchemaValidator compiles the embedded schemas.
func NewSchemaValidator() (*SchemaValidator, error) {
	sources := map[string]string{
		"recommendation-request": recommendationRequestSchema,
	}

	sv := &SchemaValidator{schemas: make(map[string]*gojsonschema.Schema, len(sources))}
	for name, source := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		sv.schemas[name] = schema
	}
	return sv, nil
}

// ValidateRecommendationRequest validates a recommend payload.
func (sv *SchemaValidator) ValidateRecommendationRequest(body []byte) *ValidationResult {
	return sv.validate("recommendation-request", body)
}

func (sv *SchemaValidator) validate(schemaName string, body []byte) *ValidationResult {
	schema, exists := sv.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "schema", Message: fmt.Sprintf("schema %q not found", schemaName)}},
		}
	}

	if !json.Valid(body) {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "body", Message: "request body must be valid JSON"}},
		}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "body", Message: err.Error()}},
		}
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	out := &ValidationResult{Valid: false}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out
}
