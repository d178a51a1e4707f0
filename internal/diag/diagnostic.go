// Package diag defines the diagnostic model shared by the parser, the rule
// engine, and the renderers. Diagnostics are plain data: a code from the
// closed catalog, a span in absolute 1-based file coordinates, a formatted
// message, and an optional suggestion string. No autofix edits are carried;
// this tool only reports.
package diag

import (
	"numdoc/internal/source"
)

// Diagnostic is one reported finding.
type Diagnostic struct {
	Code       Code
	Span       source.Span
	Message    string
	Suggestion string
	// Terminates is set only on the missing-docstring diagnostic: no other
	// check can meaningfully run against absent text.
	Terminates bool
}

// Severity returns the rendering severity of the diagnostic's code.
func (d Diagnostic) Severity() Severity {
	return d.Code.Severity()
}

// New builds a diagnostic for a span.
func New(code Code, span source.Span, msg string) Diagnostic {
	return Diagnostic{Code: code, Span: span, Message: msg}
}

// WithSuggestion attaches a suggestion string.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}
