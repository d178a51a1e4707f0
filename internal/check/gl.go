package check

import (
	"fmt"
	"regexp"
	"strings"

	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/docstring"
	"numdoc/internal/source"
)

// allowedSections is the canonical numpydoc section list; GL07 checks
// relative order against it.
var allowedSections = []string{
	"Parameters",
	"Attributes",
	"Methods",
	"Returns",
	"Yields",
	"Other Parameters",
	"Raises",
	"Warns",
	"Warnings",
	"See Also",
	"Notes",
	"References",
	"Examples",
}

var allowedSectionSet = func() map[string]bool {
	m := make(map[string]bool, len(allowedSections))
	for _, s := range allowedSections {
		m[s] = true
	}
	return m
}()

var directivePattern = regexp.MustCompile(`^\s*\.\. ((?i:versionadded|versionchanged|deprecated))`)

func checkStartOnNewLine(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if !doc.Multiline() || emptyPrefixLines(doc.Lines) == 1 {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.GLStartOnNewLine, source.At(doc.Lines[0].Pos),
			"Docstring should start on a new line."),
	}
}

func checkBlankBeforeClose(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if !doc.Multiline() || emptySuffixLines(doc.Lines) == 1 {
		return nil
	}
	pos := source.Position{Line: doc.Span.End.Line - 1, Col: doc.Indent + 1}
	return []diag.Diagnostic{
		diag.New(diag.GLBlankBeforeClose, source.At(pos),
			"Docstring should end one line before the closing quotes.").
			WithSuggestion("Remove empty line."),
	}
}

func checkDoubleBlankLine(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	var out []diag.Diagnostic
	prevBlank := false
	for i, line := range doc.Lines {
		if prevBlank && line.Blank() && i < len(doc.Lines)-1 {
			out = append(out, diag.New(diag.GLDoubleBlankLine, source.At(line.Pos),
				"Docstring should not contain double line breaks."))
		}
		prevBlank = line.Blank()
	}
	return out
}

func checkTabIndentation(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, line := range doc.Lines {
		for i := 0; i < len(line.Text); i++ {
			ch := line.Text[i]
			if ch == '\t' {
				out = append(out, diag.New(diag.GLTabIndentation,
					source.Between(line.Pos, line.Pos.Move(0, i+1)),
					"Docstring line should not start with tabs."))
				break
			}
			if ch != ' ' {
				break
			}
		}
	}
	return out
}

func checkUnexpectedSection(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		if !allowedSectionSet[sec.Name.Value] {
			out = append(out, diag.New(diag.GLUnexpectedSection, sec.Name.Span,
				"Docstring contains unexpected section.").
				WithSuggestion("Remove section or fix spelling."))
		}
	}
	return out
}

// checkSectionOrder zips the allow-list order against the document order and
// flags every position where they disagree. A count mismatch truncates the
// zip; it is not an alignment diff.
func checkSectionOrder(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	var expected []string
	for _, name := range allowedSections {
		if doc.Section(name) != nil {
			expected = append(expected, name)
		}
	}
	var actual []*docstring.Section
	for i := range doc.Sections {
		if allowedSectionSet[doc.Sections[i].Name.Value] {
			actual = append(actual, &doc.Sections[i])
		}
	}

	var out []diag.Diagnostic
	for i := 0; i < len(expected) && i < len(actual); i++ {
		if actual[i].Name.Value != expected[i] {
			out = append(out, diag.New(diag.GLSectionOrder, actual[i].Name.Span,
				"Sections are in the wrong order.").
				WithSuggestion(fmt.Sprintf("Section should be `%s`", expected[i])))
		}
	}
	return out
}

// deprecatedMarkers returns the start positions of lines carrying a
// ".. deprecated:: " marker.
func deprecatedMarkers(p *docstring.Paragraph) []source.Position {
	if p.Empty() {
		return nil
	}
	var out []source.Position
	for _, line := range p.Lines {
		if strings.Contains(line.Text, ".. deprecated:: ") {
			out = append(out, line.Pos)
		}
	}
	return out
}

// summaryDeprecations collects deprecation markers from both summary
// paragraphs plus the paragraph their placement is judged against.
func summaryDeprecations(doc *docstring.DocString) ([]source.Position, *docstring.Paragraph) {
	marks := deprecatedMarkers(doc.Summary.Content)
	marks = append(marks, deprecatedMarkers(doc.Summary.Extended)...)
	ref := doc.Summary.Extended
	if ref == nil {
		ref = doc.Summary.Content
	}
	return marks, ref
}

func checkDeprecatedPlacement(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	marks, ref := summaryDeprecations(doc)
	if len(marks) == 0 || ref == nil || marks[0].Line == ref.Span.Start.Line {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.GLDeprecatedPlacement,
			source.Between(marks[0], marks[0].Move(0, 15)),
			"Deprecation warning should precede extended summary.").
			WithSuggestion(fmt.Sprintf("Move deprecation warning to line %d", ref.Span.Start.Line)),
	}
}

func checkDeprecatedDuplicate(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	marks, ref := summaryDeprecations(doc)
	if len(marks) < 2 || ref == nil {
		return nil
	}
	var offenders []source.Position
	for _, m := range marks {
		if m.Line != ref.Span.Start.Line {
			offenders = append(offenders, m)
		}
	}
	if len(offenders) == 0 {
		return nil
	}

	var where string
	if len(offenders) == 1 {
		where = fmt.Sprintf("line %d", offenders[0].Line)
	} else {
		lines := make([]string, len(offenders)-1)
		for i, o := range offenders[:len(offenders)-1] {
			lines[i] = fmt.Sprintf("%d", o.Line)
		}
		where = fmt.Sprintf("lines %s and %d", strings.Join(lines, ", "), offenders[len(offenders)-1].Line)
	}

	out := make([]diag.Diagnostic, len(offenders))
	for i, m := range offenders {
		out[i] = diag.New(diag.GLDeprecatedDuplicate,
			source.Between(m, m.Move(0, 15)),
			"Summary should only contain a single deprecation warning.").
			WithSuggestion("Remove duplicate deprecation warnings on " + where)
	}
	return out
}

func checkDirectiveColons(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, line := range doc.Lines {
		m := directivePattern.FindStringSubmatchIndex(line.Text)
		if m == nil {
			continue
		}
		if strings.HasPrefix(line.Text[m[3]:], "::") {
			continue
		}
		out = append(out, diag.New(diag.GLDirectiveColons,
			source.Between(line.Pos.Move(0, m[2]), line.Pos.Move(0, m[3]+1)),
			"reST directives must be followed by two colon.").
			WithSuggestion("Fix the directive by inserting `::`"))
	}
	return out
}
