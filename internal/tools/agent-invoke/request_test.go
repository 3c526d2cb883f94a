package agentinvoke

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcore-tools/internal/common/errors"
)

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected string
	}{
		{
			name:     "prompt only",
			input:    Input{Prompt: "whats atp"},
			expected: `{"prompt":"whats atp"}`,
		},
		{
			name:     "topic",
			input:    Input{Prompt: "p", Topic: "IMPOZITE, TAXE, CONTRIBUTII"},
			expected: `{"prompt":"p","input":{"topic":"IMPOZITE, TAXE, CONTRIBUTII"}}`,
		},
		{
			name:     "active only",
			input:    Input{Prompt: "p", ActiveOnly: true},
			expected: `{"prompt":"p","input":{"active_only":true}}`,
		},
		{
			name:     "both filters",
			input:    Input{Prompt: "p", Topic: "t", ActiveOnly: true},
			expected: `{"prompt":"p","input":{"topic":"t","active_only":true}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildRequest(&tt.input)
			body, err := json.Marshal(req)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(body))
			assert.NoError(t, ValidateRequest(req))
		})
	}
}

func TestValidateRequest_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"empty prompt", Request{Prompt: ""}},
		{"empty filter object", Request{Prompt: "p", Input: &RequestFilter{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeRequestValidationFailed, errors.CodeOf(err))
		})
	}
}
