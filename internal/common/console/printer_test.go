package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_PlainOutputForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Banner("Getting Agent Details")
	p.Success("Agent Details Retrieved")
	p.Failure("Error: %s", "boom")
	p.Warning("No explicit endpoint URL in response")
	p.ThinRule()

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, strings.Repeat("=", 70), lines[0])
	assert.Equal(t, "Getting Agent Details", lines[1])
	assert.Equal(t, strings.Repeat("=", 70), lines[2])
	assert.Equal(t, "✓ Agent Details Retrieved", lines[3])
	assert.Equal(t, "✗ Error: boom", lines[4])
	assert.Equal(t, "⚠️  No explicit endpoint URL in response", lines[5])
	assert.Equal(t, strings.Repeat("-", 70), lines[6])
	assert.NotContains(t, out, "\x1b[")
}

func TestPrinter_Line(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Line("Region: %s", "eu-central-1")
	p.Blank()

	assert.Equal(t, "Region: eu-central-1\n\n", buf.String())
}
