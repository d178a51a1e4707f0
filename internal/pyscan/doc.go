package pyscan

import (
	"regexp"
	"strings"

	"numdoc/internal/decl"
	"numdoc/internal/source"
)

var stringOpenPattern = regexp.MustCompile(`^(\s*)((?i:rb|br|ru|ur|[rub])?)("""|''')`)

// docstringAt parses a triple-quoted string literal starting on 0-based line
// j. The returned RawDoc keeps the delimiter geometry: Span covers the whole
// literal including quotes and prefix, OpenLen is the prefix plus opening
// quote width, and Text is exactly the content between the delimiters.
func (s *scanner) docstringAt(j int) (*decl.RawDoc, int, bool) {
	line := s.lines[j]
	m := stringOpenPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, 0, false
	}
	indent := len(m[1])
	openLen := len(m[2]) + len(m[3])
	delim := m[3]

	doc := &decl.RawDoc{
		Indent:  indent,
		OpenLen: openLen,
	}
	doc.Span.Start = source.Position{Line: j + 1, Col: indent + 1}

	rest := line[indent+openLen:]
	if idx := strings.Index(rest, delim); idx >= 0 {
		doc.Text = rest[:idx]
		doc.Span.End = source.Position{Line: j + 1, Col: indent + openLen + idx + len(delim) + 1}
		return doc, j + 1, true
	}

	parts := []string{rest}
	for k := j + 1; k < len(s.lines); k++ {
		if idx := strings.Index(s.lines[k], delim); idx >= 0 {
			parts = append(parts, s.lines[k][:idx])
			doc.Text = strings.Join(parts, "\n")
			doc.Span.End = source.Position{Line: k + 1, Col: idx + len(delim) + 1}
			return doc, k + 1, true
		}
		parts = append(parts, s.lines[k])
	}
	return nil, 0, false
}
