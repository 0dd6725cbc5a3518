package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hintTestSchema = &Schema{
	Name: "test-hint",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"hint"},
		"properties": map[string]any{
			"hint":  map[string]any{"type": "string", "minLength": 1},
			"level": map[string]any{"type": "string", "enum": []string{"gentle", "strong"}},
		},
		"additionalProperties": false,
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"valid", `{"hint":"capital of France"}`, true},
		{"with optional", `{"hint":"x","level":"gentle"}`, true},
		{"missing required", `{"level":"gentle"}`, false},
		{"wrong type", `{"hint":3}`, false},
		{"empty string", `{"hint":""}`, false},
		{"bad enum", `{"hint":"x","level":"loud"}`, false},
		{"extra field", `{"hint":"x","answer":"Paris"}`, false},
		{"malformed", `{"hint":`, false},
		{"empty", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(hintTestSchema, json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}
