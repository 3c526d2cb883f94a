package agentinvoke

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcore-tools/internal/common/errors"
)

func strPtr(s string) *string { return &s }

func renderString(t *testing.T, body string) string {
	t.Helper()
	resp, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	var buf bytes.Buffer
	Render(&buf, resp)
	return buf.String()
}

func TestParseResponse_Variants(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected Response
	}{
		{
			name: "structured message",
			body: `{"output":{"message":{"answer":"X","sources":[{"articolul":"Art.1","file_id":"f1"}],"raw":"r"}}}`,
			expected: StructuredMessage{
				Answer:  strPtr("X"),
				Sources: []Source{{Articolul: strPtr("Art.1"), FileID: strPtr("f1")}},
				Raw:     strPtr("r"),
			},
		},
		{
			name:     "structured message with missing parts",
			body:     `{"output":{"message":{"sources":[{}]}}}`,
			expected: StructuredMessage{Sources: []Source{{}}},
		},
		{
			name:     "plain message",
			body:     `{"output":{"message":"hello"}}`,
			expected: PlainMessage{Text: "hello"},
		},
		{
			name:     "numeric message",
			body:     `{"output":{"message":42}}`,
			expected: PlainMessage{Text: "42"},
		},
		{
			name:     "array message",
			body:     `{"output":{"message":[1, "a"]}}`,
			expected: PlainMessage{Text: `[1,"a"]`},
		},
		{
			name:     "simple response",
			body:     `{"response":"ok"}`,
			expected: SimpleResponse{Text: "ok"},
		},
		{
			name:     "output without message",
			body:     `{"output":{"other":1},"response":"ignored"}`,
			expected: EmptyOutput{},
		},
		{
			name:     "opaque object",
			body:     `{"foo":"bar"}`,
			expected: OpaqueDocument{Document: []byte(`{"foo":"bar"}`)},
		},
		{
			name:     "opaque array",
			body:     ` [1,2] `,
			expected: OpaqueDocument{Document: []byte(`[1,2]`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp)
		})
	}
}

func TestParseResponse_InvalidJSON(t *testing.T) {
	for _, body := range []string{"", "not json", `{"output":`} {
		_, err := ParseResponse([]byte(body))
		require.Error(t, err, body)
		assert.Equal(t, errors.ErrCodeResponseDecodeFailed, errors.CodeOf(err))
	}
}

func TestRender_StructuredAnswerWithSource(t *testing.T) {
	out := renderString(t, `{"output":{"message":{"answer":"X","sources":[{"articolul":"Art.1","file_id":"f1"}]}}}`)

	assert.Contains(t, out, "📝 Answer:\nX\n")
	assert.Contains(t, out, "📚 Sources:")

	var sourceLines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Art.1") && strings.Contains(line, "f1") {
			sourceLines = append(sourceLines, line)
		}
	}
	require.Len(t, sourceLines, 1)
	assert.Equal(t, "  1. Art.1 (File ID: f1)", sourceLines[0])
	assert.NotContains(t, out, "Raw Response Preview")
}

func TestRender_MissingSourceFields(t *testing.T) {
	out := renderString(t, `{"output":{"message":{"sources":[{"articolul":"Art.2"},{"file_id":"f9"}]}}}`)

	assert.Contains(t, out, "  1. Art.2 (File ID: N/A)")
	assert.Contains(t, out, "  2. N/A (File ID: f9)")
	assert.NotContains(t, out, "Answer:")
}

func TestRender_EmptySourcesOmitted(t *testing.T) {
	out := renderString(t, `{"output":{"message":{"answer":"A","sources":[]}}}`)
	assert.Contains(t, out, "A")
	assert.NotContains(t, out, "Sources:")
}

func TestRender_PlainMessage(t *testing.T) {
	out := renderString(t, `{"output":{"message":"just text"}}`)
	assert.Equal(t, "\njust text\n", out)
	assert.NotContains(t, out, "Sources")
}

func TestRender_SimpleResponse(t *testing.T) {
	out := renderString(t, `{"response":"ok"}`)
	assert.Equal(t, "\nok\n", out)
}

func TestRender_EmptyOutputPrintsNothing(t *testing.T) {
	out := renderString(t, `{"output":{}}`)
	assert.Empty(t, out)
}

func TestRender_RawPreviewTruncated(t *testing.T) {
	raw := strings.Repeat("a", 500) + strings.Repeat("b", 100)
	out := renderString(t, `{"output":{"message":{"raw":"`+raw+`"}}}`)

	expected := strings.Repeat("a", 500) + "..."
	assert.Contains(t, out, "🔍 Raw Response Preview:\n"+expected+"\n")
	assert.NotContains(t, out, "b")
}

func TestPreviewRaw(t *testing.T) {
	assert.Equal(t, "short", PreviewRaw("short"))
	assert.Equal(t, strings.Repeat("x", 500), PreviewRaw(strings.Repeat("x", 500)))

	long := strings.Repeat("ă", 600)
	preview := PreviewRaw(long)
	assert.Equal(t, strings.Repeat("ă", 500)+"...", preview)
}

func TestRender_OpaqueDocumentPrettyPrinted(t *testing.T) {
	out := renderString(t, `{"status":"done","detail":{"text":"Impozit pe venit – ăîșț"}}`)

	assert.Contains(t, out, "{\n  \"status\": \"done\",\n  \"detail\": {\n    \"text\": \"Impozit pe venit – ăîșț\"\n  }\n}")
}
