package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"numdoc/internal/diag"
	"numdoc/internal/source"
)

// Pretty writes each diagnostic as an annotated source excerpt:
//
//	error[PR05]: Parameter `aaa` type should not finish with `.`.
//	 --> example.py:6:15
//	5 |     aaa : int.
//	6 |         Description.
//	  |              ^
//	  |              |
//	  |              Remove `.`.
func Pretty(w io.Writer, file *source.File, baseDir string, items []diag.Diagnostic, opts PrettyOpts) error {
	path := displayPath(file.Path, baseDir, opts.PathMode)
	for _, d := range items {
		if err := prettyOne(w, file, path, d, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, file *source.File, path string, d diag.Diagnostic, opts PrettyOpts) error {
	header := fmt.Sprintf("error[%s]", d.Code.ID())
	if opts.Color {
		header = severityColor(d.Severity()).Sprint(header)
	}
	if _, err := fmt.Fprintf(w, "%s: %s\n", header, d.Message); err != nil {
		return err
	}

	line := d.Span.Start.Line
	gutter := len(fmt.Sprintf("%d", line))
	pad := strings.Repeat(" ", gutter)

	if _, err := fmt.Fprintf(w, "%s--> %s:%d:%d\n", pad, path, line, d.Span.Start.Col); err != nil {
		return err
	}

	first := line - 1
	if first < 1 {
		first = 1
	}
	for n := first; n <= line; n++ {
		if n > file.LineCount() {
			break
		}
		if _, err := fmt.Fprintf(w, "%*d | %s\n", gutter, n, file.GetLine(n)); err != nil {
			return err
		}
	}

	text := ""
	if line <= file.LineCount() {
		text = file.GetLine(line)
	}
	indent := caretIndent(text, d.Span.Start.Col)

	width := d.Span.End.Col - d.Span.Start.Col
	if d.Span.End.Line != line || width < 1 {
		width = 1
	}
	carets := strings.Repeat("^", width)
	if opts.Color {
		carets = severityColor(d.Severity()).Sprint(carets)
	}
	if _, err := fmt.Fprintf(w, "%s | %s%s\n", pad, indent, carets); err != nil {
		return err
	}

	if opts.ShowSuggestions && d.Suggestion != "" {
		tail := strings.Repeat(" ", width-1)
		if _, err := fmt.Fprintf(w, "%s | %s%s|\n", pad, indent, tail); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s | %s%s%s\n", pad, indent, tail, d.Suggestion); err != nil {
			return err
		}
	}
	return nil
}

// caretIndent pads out to the diagnostic's start column using the display
// width of the line prefix, so carets line up under wide runes and tabs.
func caretIndent(text string, col int) string {
	if col < 1 {
		col = 1
	}
	prefix := text
	if col-1 <= len(text) {
		prefix = text[:col-1]
	}
	return strings.Repeat(" ", runewidth.StringWidth(prefix))
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	case diag.SevHint:
		return color.New(color.FgCyan)
	}
	return color.New(color.FgBlue)
}
