package check

import (
	"strings"
	"unicode"

	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/docstring"
)

// Description-quality predicates shared by the parameter and return
// families. Each is implemented exactly once and parameterized by
// code/message so the two families cannot drift apart.

var directives = []string{"versionadded", "versionchanged", "deprecated"}

// beforeDirective returns the non-blank description lines preceding the
// first reST directive marker.
func beforeDirective(lines []docstring.Line) []string {
	var out []string
	for _, l := range lines {
		for _, d := range directives {
			if strings.Contains(l.Text, ".. "+d) {
				return out
			}
		}
		if !l.Blank() {
			out = append(out, l.Text)
		}
	}
	return out
}

// emptyPrefixLines counts blank lines before the first non-blank line.
func emptyPrefixLines(lines []docstring.Line) int {
	for i, l := range lines {
		if !l.Blank() {
			return i
		}
	}
	return len(lines)
}

// emptySuffixLines counts blank lines after the last non-blank line.
func emptySuffixLines(lines []docstring.Line) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if !lines[i].Blank() {
			return len(lines) - 1 - i
		}
	}
	return len(lines)
}

// descHasContent reports whether any description text survives the blank
// and directive filters.
func descHasContent(p *docstring.Parameter) bool {
	return len(beforeDirective(p.Description.Lines)) > 0
}

// checkDescMissing flags an entry with no usable description text.
func checkDescMissing(p *docstring.Parameter, code diag.Code, message string) []diag.Diagnostic {
	if descHasContent(p) {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(code, p.Anchor().Span, message).WithSuggestion("Add description."),
	}
}

// checkDescUppercase flags a description whose first letter is lowercase.
func checkDescUppercase(p *docstring.Parameter, code diag.Code, message string) []diag.Diagnostic {
	data := beforeDirective(p.Description.Lines)
	if len(data) == 0 {
		return nil
	}
	first := strings.TrimLeft(data[0], " \t")
	if first == "" {
		return nil
	}
	r := []rune(first)[0]
	if !unicode.IsLetter(r) || unicode.IsUpper(r) {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(code, p.Anchor().Span, message).
			WithSuggestion("Change first letter to uppercase."),
	}
}

// checkDescPeriod flags a description whose last line does not end with a
// period. List items and lines indented past the docstring base (code
// blocks) are exempt.
func checkDescPeriod(p *docstring.Parameter, indent int, code diag.Code, message string) []diag.Diagnostic {
	data := beforeDirective(p.Description.Lines)
	if len(data) == 0 {
		return nil
	}
	last := data[len(data)-1]
	stripped := strings.TrimLeft(last, " \t")
	if strings.HasSuffix(last, ".") ||
		strings.HasPrefix(stripped, "*") ||
		strings.HasPrefix(stripped, "- ") ||
		len(last)-len(stripped) > indent {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(code, p.Anchor().Span, message).
			WithSuggestion("Add period to end of description."),
	}
}

// declaredName renders a declared parameter the way numpydoc documents it,
// star prefixes included.
func declaredName(p decl.Parameter) string {
	return strings.Repeat("*", p.StarCount) + p.Name
}

// entryName renders the documented entry name used in messages.
func entryName(p *docstring.Parameter) string {
	return p.DisplayName()
}
