package agentinvoke

import (
	"bytes"
	"encoding/json"
	"io"

	"agentcore-tools/internal/common/console"
)

const (
	rawPreviewLength = 500
	notAvailable     = "N/A"
)

// Render prints the human-readable form of resp to w.
func Render(w io.Writer, resp Response) {
	render(console.New(w), resp)
}

func render(p *console.Printer, resp Response) {
	switch r := resp.(type) {
	case StructuredMessage:
		if r.Answer != nil {
			p.Blank()
			p.Heading("📝 Answer:")
			p.Line("%s", *r.Answer)
		}
		if len(r.Sources) > 0 {
			p.Blank()
			p.Heading("📚 Sources:")
			for i, src := range r.Sources {
				p.Line("  %d. %s (File ID: %s)", i+1, orNA(src.Articolul), orNA(src.FileID))
			}
		}
		if r.Raw != nil {
			p.Blank()
			p.Heading("🔍 Raw Response Preview:")
			p.Line("%s", PreviewRaw(*r.Raw))
		}
	case PlainMessage:
		p.Blank()
		p.Line("%s", r.Text)
	case SimpleResponse:
		p.Blank()
		p.Line("%s", r.Text)
	case OpaqueDocument:
		p.Blank()
		p.Line("%s", indentJSON(r.Document))
	case EmptyOutput:
	}
}

// PreviewRaw keeps the first 500 characters of raw, marking a cut with
// "...".
func PreviewRaw(raw string) string {
	runes := []rune(raw)
	if len(runes) <= rawPreviewLength {
		return raw
	}
	return string(runes[:rawPreviewLength]) + "..."
}

func indentJSON(doc json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return string(doc)
	}
	return buf.String()
}

func orNA(s *string) string {
	if s == nil {
		return notAvailable
	}
	return *s
}
