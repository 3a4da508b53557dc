// Package diagfmt renders diagnostics and dump payloads for terminals and
// golden files.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"slate/internal/diag"
	"slate/internal/source"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	ShowNotes   bool
	ShowPreview bool
}

// Pretty formats every diagnostic in bag as
//
//	<path>:<line>:<col>: <severity> <code>: <message>
//
// followed, when enabled, by the offending source line with a caret
// underline and by the diagnostic's notes. Callers sort the bag first when
// they want stable output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := printer{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *printer) diagnostic(d diag.Diagnostic) {
	head := fmt.Sprintf("%s %s: %s", p.severity(d.Severity), d.Code, d.Message)
	if d.Primary.File.IsValid() && p.fs != nil {
		fmt.Fprintf(p.w, "%s: %s\n", p.fs.Position(d.Primary), head)
		if p.opts.ShowPreview {
			p.preview(d.Primary)
		}
	} else {
		fmt.Fprintln(p.w, head)
	}
	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			if n.Span.File.IsValid() && p.fs != nil {
				fmt.Fprintf(p.w, "  note: %s: %s\n", p.fs.Position(n.Span), n.Msg)
			} else {
				fmt.Fprintf(p.w, "  note: %s\n", n.Msg)
			}
		}
	}
}

func (p *printer) severity(sev diag.Severity) string {
	label := sev.String()
	if !p.opts.Color {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}

// preview prints the first line the span covers with a caret underline.
// Caret alignment accounts for display width, so wide runes and tabs in the
// preceding text do not skew the marker.
func (p *printer) preview(span source.Span) {
	file := p.fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := p.fs.Resolve(span)
	line := file.Line(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(p.w, "  %s\n", strings.ReplaceAll(line, "\t", " "))

	prefixWidth := displayWidth(line, int(start.Col)-1)
	markerLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		markerLen = int(end.Col - start.Col)
	}
	marker := "^" + strings.Repeat("~", markerLen-1)
	if p.opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(p.w, "  %s%s\n", strings.Repeat(" ", prefixWidth), marker)
}

// displayWidth measures the on-screen width of the first n bytes of line,
// tabs counted as single spaces to match the preview rendering.
func displayWidth(line string, n int) int {
	if n < 0 {
		n = 0
	}
	if n > len(line) {
		n = len(line)
	}
	width := 0
	for _, r := range line[:n] {
		if r == '\t' {
			width++
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}
