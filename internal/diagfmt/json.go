package diagfmt

import (
	"encoding/json"
	"io"

	"numdoc/internal/diag"
	"numdoc/internal/source"
)

// LocationJSON is a span in file coordinates (1-based lines and columns).
type LocationJSON struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// DiagnosticJSON is one finding in JSON form.
type DiagnosticJSON struct {
	Severity   string       `json:"severity"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Suggestion string       `json:"suggestion,omitempty"`
	Location   LocationJSON `json:"location"`
}

// DiagnosticsOutput is the root JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnostics converts one file's diagnostics to their JSON form.
// Callers aggregate across files into a single DiagnosticsOutput.
func BuildDiagnostics(file *source.File, baseDir string, items []diag.Diagnostic, opts JSONOpts) []DiagnosticJSON {
	path := displayPath(file.Path, baseDir, opts.PathMode)
	max := len(items)
	if opts.Max > 0 && opts.Max < max {
		max = opts.Max
	}

	out := make([]DiagnosticJSON, 0, max)
	for _, d := range items[:max] {
		out = append(out, DiagnosticJSON{
			Severity:   d.Severity().String(),
			Code:       d.Code.ID(),
			Message:    d.Message,
			Suggestion: d.Suggestion,
			Location: LocationJSON{
				File:      path,
				StartLine: d.Span.Start.Line,
				StartCol:  d.Span.Start.Col,
				EndLine:   d.Span.End.Line,
				EndCol:    d.Span.End.Col,
			},
		})
	}
	return out
}

// JSON serializes an aggregated output document, indented, with a trailing
// newline.
func JSON(w io.Writer, output DiagnosticsOutput) error {
	if output.Diagnostics == nil {
		output.Diagnostics = []DiagnosticJSON{}
	}
	output.Count = len(output.Diagnostics)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
