package docstring

import (
	"regexp"
	"strings"

	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/source"
)

// Section content taxonomy. Names not listed here keep their body as free
// text.
var parameterSections = map[string]bool{
	"Parameters":       true,
	"Other Parameters": true,
	"Attributes":       true,
	"Methods":          true,
}

// Sections whose entries may be a bare type with no name.
var typeOnlySections = map[string]bool{
	"Returns":  true,
	"Yields":   true,
	"Raises":   true,
	"Warns":    true,
	"Receives": true,
}

// signatureEchoPattern matches a constructor-signature echo such as
// "x = cls.method(arg1, arg2)" that some docstrings place before the real
// summary line.
var signatureEchoPattern = regexp.MustCompile(`^([\w., ]+=)?\s*[\w\.]+\(.*\)$`)

// Parse builds the document model for one raw docstring. Malformations are
// returned as diagnostics next to the best-effort model; Parse itself never
// fails.
func Parse(doc *decl.RawDoc) (*DocString, []diag.Diagnostic) {
	d := &DocString{
		Span:   doc.Span,
		Indent: doc.Indent,
		Raw:    doc.Text,
		byName: make(map[string]int),
	}
	d.Lines = splitDoc(doc)

	r := NewReader(d.Lines)
	if !r.EOF() && !r.IsAtSectionBoundary() {
		d.Summary = parseSummary(NewReader(r.ReadUntilNextSectionBoundary()))
	}

	var diags []diag.Diagnostic
	for !r.EOF() {
		if prev, ok := r.Peek(-1); ok && !prev.Blank() {
			head, _ := r.Peek(0)
			diags = append(diags, diag.New(
				diag.ERMissingBlankBeforeSection,
				source.At(head.Pos.Move(0, indentWidth(head.Text))),
				"Missing blank line before section.",
			))
		}
		data := r.ReadUntilNextSectionBoundary()
		sec, secDiags, ok := parseSection(data, doc.Indent)
		diags = append(diags, secDiags...)
		if !ok {
			continue
		}
		d.Sections = append(d.Sections, sec)
		d.byName[sec.Name.Value] = len(d.Sections) - 1
	}
	return d, diags
}

// splitDoc turns the raw text into positioned lines. Joining the result with
// newlines reproduces the raw text exactly.
func splitDoc(doc *decl.RawDoc) []Line {
	parts := strings.Split(doc.Text, "\n")
	lines := make([]Line, len(parts))
	for i, text := range parts {
		pos := source.Position{Line: doc.Span.Start.Line + i, Col: 1}
		if i == 0 {
			pos.Col = doc.Span.Start.Col + doc.OpenLen
		}
		lines[i] = Line{Pos: pos, Text: text}
	}
	return lines
}

// parseSummary recovers the summary paragraph and the optional extended
// paragraph from the pre-section lines. A paragraph that echoes the callable
// signature is skipped when more content follows.
func parseSummary(r *Reader) Summary {
	var s Summary
	for {
		r.SkipBlank()
		if r.EOF() {
			break
		}
		para := newParagraph(r.ReadUntilBlank())
		if isSignatureEcho(&para) && !allBlankAhead(r) {
			continue
		}
		s.Content = &para
		break
	}
	rest := trimBlankEdges(r.ReadToEOF())
	if len(rest) > 0 {
		para := newParagraph(rest)
		s.Extended = &para
	}
	return s
}

func isSignatureEcho(p *Paragraph) bool {
	parts := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		parts[i] = trimSpace(l.Text)
	}
	return signatureEchoPattern.MatchString(strings.Join(parts, " "))
}

func allBlankAhead(r *Reader) bool {
	for off := 0; ; off++ {
		l, ok := r.Peek(off)
		if !ok {
			return true
		}
		if !l.Blank() {
			return false
		}
	}
}

func trimBlankEdges(lines []Line) []Line {
	start := 0
	for start < len(lines) && lines[start].Blank() {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1].Blank() {
		end--
	}
	return lines[start:end]
}

// parseSection interprets one boundary-delimited run of lines. data[0] is
// the header line. The second return carries malformation diagnostics; ok is
// false when the run cannot form a section at all.
func parseSection(data []Line, indent int) (Section, []diag.Diagnostic, bool) {
	header := data[0]
	name := trimSpace(header.Text)
	nameStart := header.Pos.Move(0, indentWidth(header.Text))

	sec := Section{
		Name: Token{
			Span:  source.Between(nameStart, nameStart.Move(0, len(name))),
			Value: name,
		},
		ValidUnderline: true,
	}

	var body []Line
	var diags []diag.Diagnostic
	if strings.HasPrefix(name, ".. index::") {
		sec.Name.Value = ".. index::"
		body = data[1:]
	} else {
		j := 1
		for j < len(data) && data[j].Blank() {
			j++
		}
		if j >= len(data) {
			return Section{}, nil, false
		}
		underline := trimSpace(data[j].Text)
		if len(underline) != len(name) {
			sec.ValidUnderline = false
			start := data[j].Pos.Move(0, indentWidth(data[j].Text))
			diags = append(diags, diag.New(
				diag.ERUnderlineLength,
				source.Between(start, start.Move(0, len(underline))),
				"Section underline is too short or too long.",
			))
		}
		body = data[j+1:]
	}

	trimmed := trimBlankEdges(body)
	if len(trimmed) > 0 {
		last := trimmed[len(trimmed)-1]
		sec.ContentSpan = source.Between(trimmed[0].Pos, last.End())
	} else {
		sec.ContentSpan = source.At(header.End())
	}

	switch {
	case parameterSections[sec.Name.Value]:
		sec.Params = parseParameterList(body, indent, false)
	case typeOnlySections[sec.Name.Value]:
		sec.Params = parseParameterList(body, indent, true)
	case sec.Name.Value == "See Also":
		var saDiags []diag.Diagnostic
		sec.SeeAlso, saDiags = parseSeeAlso(body, indent)
		diags = append(diags, saDiags...)
	default:
		sec.Text = body
	}
	return sec, diags, true
}

// indentWidth counts the leading whitespace bytes of s.
func indentWidth(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
