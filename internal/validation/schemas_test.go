package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecommendationRequest(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{
			name:  "full valid payload",
			body:  `{"brand":"Acme","price":500,"camera":48,"battery":4000,"ram":8,"display_size":6.2,"weight":180,"release_year":2024,"performance":"balanced","mode":"hybrid","count":5}`,
			valid: true,
		},
		{
			name:  "empty object",
			body:  `{}`,
			valid: true,
		},
		{
			name:  "nl query only",
			body:  `{"nl_query":"a cheap phone with a great camera","mode":"semantic"}`,
			valid: true,
		},
		{
			name:  "unknown field rejected",
			body:  `{"colour":"red"}`,
			valid: false,
		},
		{
			name:  "bad performance enum",
			body:  `{"performance":"turbo"}`,
			valid: false,
		},
		{
			name:  "bad mode enum",
			body:  `{"mode":"psychic"}`,
			valid: false,
		},
		{
			name:  "count out of range",
			body:  `{"count":0}`,
			valid: false,
		},
		{
			name:  "wrong type",
			body:  `{"price":"five hundred"}`,
			valid: false,
		},
		{
			name:  "invalid json",
			body:  `{"brand":`,
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sv.ValidateRecommendationRequest([]byte(tt.body))
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
			}
		})
	}
}
