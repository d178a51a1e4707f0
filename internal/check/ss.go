package check

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/docstring"
	"numdoc/internal/source"
)

var upperCaser = cases.Upper(language.English)

// firstWordPattern captures the first whitespace-delimited word of the
// summary. It requires trailing whitespace, so a one-word summary is never
// matched; that asymmetry is inherited behavior.
var firstWordPattern = regexp.MustCompile(`^\s*(.*?)\s+`)

func checkSummaryMissing(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if doc.Summary.Content != nil {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.SSMissing, doc.Span, "No summary found.").
			WithSuggestion("Add a short summary in a single line"),
	}
}

func checkSummaryCapitalization(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if doc.Summary.Content.Empty() {
		return nil
	}
	first := strings.TrimSpace(doc.Summary.Content.Lines[0].Text)
	if first == "" {
		return nil
	}
	r := []rune(first)[0]
	if !unicode.IsLetter(r) || unicode.IsUpper(r) {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.SSCapitalization, source.At(doc.Summary.Content.Span.Start),
			"Summary does not start with a capital letter").
			WithSuggestion(fmt.Sprintf("Replace `%c` with `%s`", r, upperCaser.String(string(r)))),
	}
}

func checkSummaryPeriod(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if doc.Summary.Content.Empty() {
		return nil
	}
	line := doc.Summary.Content.Lines[0]
	if strings.HasSuffix(line.Text, ".") {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.SSPeriod,
			source.Between(doc.Summary.Content.Span.Start, line.End()),
			"Summary does not end with a period.").
			WithSuggestion("Insert a period."),
	}
}

// checkSummaryIndentation flags extra leading whitespace on the summary's
// first line beyond the docstring base indent. The first physical docstring
// line has no base indent at all, so any leading whitespace there counts.
func checkSummaryIndentation(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if doc.Summary.Content.Empty() {
		return nil
	}
	line := doc.Summary.Content.Lines[0]
	indent := len(line.Text) - len(strings.TrimLeft(line.Text, " \t"))

	base := doc.Indent
	if line.Pos.Col != 1 {
		base = 0
	}
	if indent <= base {
		return nil
	}
	start := source.Position{Line: line.Pos.Line, Col: line.Pos.Col + base}
	return []diag.Diagnostic{
		diag.New(diag.SSIndentation,
			source.Between(start, line.Pos.Move(0, indent)),
			"Summary contains heading whitespaces.").
			WithSuggestion("Remove leading whitespace."),
	}
}

func checkSummaryThirdPerson(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if !d.Callable() || doc.Summary.Content.Empty() {
		return nil
	}
	line := doc.Summary.Content.Lines[0]
	m := firstWordPattern.FindStringSubmatchIndex(line.Text)
	if m == nil {
		return nil
	}
	word := strings.TrimSpace(line.Text[m[2]:m[3]])
	if word == "" || !strings.HasSuffix(word, "s") {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.SSThirdPerson,
			source.Between(line.Pos.Move(0, m[2]), line.Pos.Move(0, m[3])),
			"Summary must start with infinitive verb, not third person.").
			WithSuggestion("Remove third person `s`"),
	}
}

func checkSummarySingleLine(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if doc.Summary.Content.Empty() || len(doc.Summary.Content.Lines) <= 1 {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.SSSingleLine, doc.Summary.Content.Span,
			"Summary should fit in a single line"),
	}
}

func checkExtendedSummaryMissing(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if !doc.Summary.Extended.Empty() {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.ESMissing, doc.Span, "No extended summary found."),
	}
}

func checkExamplesMissing(_ *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if doc.Section("Examples") != nil {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.EXMissing, doc.Span, "No examples section found.").
			WithSuggestion("Add a Examples section"),
	}
}
