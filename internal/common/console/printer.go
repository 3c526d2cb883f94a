// Package console prints the human-readable reports of the agentcore
// commands. Styling degrades to plain text when the writer is not a
// terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 70

type Printer struct {
	w io.Writer

	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (p *Printer) Rule() {
	fmt.Fprintln(p.w, strings.Repeat("=", ruleWidth))
}

func (p *Printer) ThinRule() {
	fmt.Fprintln(p.w, strings.Repeat("-", ruleWidth))
}

// Banner prints title framed by rules.
func (p *Printer) Banner(title string) {
	p.Rule()
	fmt.Fprintln(p.w, p.heading.Render(title))
	p.Rule()
}

func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.w, p.heading.Render(title))
}

func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Failure(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.failure.Render("✗ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.warning.Render("⚠️  "+fmt.Sprintf(format, args...)))
}
