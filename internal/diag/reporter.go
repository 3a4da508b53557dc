package diag

import (
	"fmt"
	"io"

	"slate/internal/source"
)

// Reporter is the minimal contract for receiving diagnostics from stages.
// Implementations: BagReporter (accumulates), StreamReporter (writes text),
// MultiReporter (fan-out), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// Error is a shortcut for reporting a SevError diagnostic.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevError, primary, msg, nil)
	}
}

// Errorf formats and reports a SevError diagnostic.
func Errorf(r Reporter, code Code, primary source.Span, format string, args ...any) {
	Error(r, code, primary, fmt.Sprintf(format, args...))
}

// Warning is a shortcut for reporting a SevWarning diagnostic.
func Warning(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevWarning, primary, msg, nil)
	}
}

// BagReporter stores every reported diagnostic in a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// StreamReporter writes diagnostics as "<location>: <message>" lines. The
// location prefix is omitted for diagnostics with an unknown span. It is the
// default sink when the embedding host does not supply its own reporter.
type StreamReporter struct {
	Out   io.Writer
	Files *source.FileSet
}

func (r StreamReporter) Report(_ Code, _ Severity, primary source.Span, msg string, _ []Note) {
	if r.Out == nil {
		return
	}
	if r.Files != nil && primary.File.IsValid() {
		fmt.Fprintf(r.Out, "%s: %s\n", r.Files.Position(primary), msg)
		return
	}
	fmt.Fprintln(r.Out, msg)
}

// MultiReporter forwards each diagnostic to every child reporter.
type MultiReporter []Reporter

func (m MultiReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	for _, r := range m {
		if r != nil {
			r.Report(code, sev, primary, msg, notes)
		}
	}
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}
