package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSchema = &Schema{
	Name: "test-payload",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"count": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
		},
		"required": []any{"title", "count"},
	},
}

func TestValidateAgainstSchema(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"conforming", `{"title":"t","count":2}`, false},
		{"missing required field", `{"title":"t"}`, true},
		{"out of range", `{"title":"t","count":7}`, true},
		{"wrong type", `{"title":"t","count":"two"}`, true},
		{"not JSON at all", `here is your JSON: {`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAgainstSchema(testSchema, json.RawMessage(tt.raw))
			if tt.wantErr {
				var inv *ErrInvalidResponse
				assert.True(t, errors.As(err, &inv))
				assert.Equal(t, tt.raw, string(inv.Content))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAgainstSchemaNilSchema(t *testing.T) {
	assert.NoError(t, validateAgainstSchema(nil, json.RawMessage(`not even json`)))
}
