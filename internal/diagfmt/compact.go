package diagfmt

import (
	"fmt"
	"io"

	"numdoc/internal/diag"
	"numdoc/internal/source"
)

// Compact writes one record per diagnostic:
//
//	path:startLine:startCol:endLine:endCol: CODE message
func Compact(w io.Writer, file *source.File, baseDir string, items []diag.Diagnostic, opts CompactOpts) error {
	path := displayPath(file.Path, baseDir, opts.PathMode)
	for _, d := range items {
		_, err := fmt.Fprintf(w, "%s:%d:%d:%d:%d: %s %s\n",
			path,
			d.Span.Start.Line, d.Span.Start.Col,
			d.Span.End.Line, d.Span.End.Col,
			d.Code.ID(), d.Message)
		if err != nil {
			return err
		}
	}
	return nil
}
