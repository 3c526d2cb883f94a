package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["prompt"],
  "additionalProperties": false,
  "properties": {
    "prompt": {"type": "string", "minLength": 1},
    "input": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "topic": {"type": "string"},
        "active_only": {"type": "boolean"}
      }
    }
  }
}`

func TestSchema_Validate(t *testing.T) {
	schema := MustCompile(testSchema)

	tests := []struct {
		name       string
		doc        interface{}
		valid      bool
		errorField string
	}{
		{
			name:  "prompt only",
			doc:   map[string]interface{}{"prompt": "whats atp"},
			valid: true,
		},
		{
			name: "prompt with input",
			doc: map[string]interface{}{
				"prompt": "whats atp",
				"input":  map[string]interface{}{"topic": "TAXE", "active_only": true},
			},
			valid: true,
		},
		{
			name:       "missing prompt",
			doc:        map[string]interface{}{},
			valid:      false,
			errorField: "(root)",
		},
		{
			name:       "empty prompt",
			doc:        map[string]interface{}{"prompt": ""},
			valid:      false,
			errorField: "prompt",
		},
		{
			name: "wrong active_only type",
			doc: map[string]interface{}{
				"prompt": "p",
				"input":  map[string]interface{}{"active_only": "yes"},
			},
			valid:      false,
			errorField: "input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, "errors: %v", result.GetErrorMessages())
			if tt.errorField != "" {
				fields := make([]string, 0, len(result.Errors))
				for _, e := range result.Errors {
					fields = append(fields, strings.SplitN(e.Field, ".", 2)[0])
				}
				assert.Contains(t, fields, tt.errorField, "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": "nonsense"}`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustCompile(`not json`) })
}
