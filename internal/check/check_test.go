package check

import (
	"reflect"
	"strings"
	"testing"

	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/docstring"
	"numdoc/internal/source"
)

// fixture builds a function declaration whose docstring starts at line 2,
// column 5 (a def on line 1 with a 4-space body indent).
func fixture(text string, params ...string) (*decl.Declaration, *docstring.DocString) {
	lineCount := strings.Count(text, "\n")
	raw := &decl.RawDoc{
		Span: source.Span{
			Start: source.Position{Line: 2, Col: 5},
			End:   source.Position{Line: 2 + lineCount, Col: 8},
		},
		Indent:  4,
		OpenLen: 3,
		Text:    text,
	}
	d := &decl.Declaration{
		Kind: decl.Function,
		Name: &decl.Name{Value: "f", Span: source.Span{
			Start: source.Position{Line: 1, Col: 5},
			End:   source.Position{Line: 1, Col: 6},
		}},
		Doc: raw,
	}
	for i, name := range params {
		col := 7 + i*3
		d.Params = append(d.Params, decl.Parameter{
			Name: name,
			Span: source.Span{
				Start: source.Position{Line: 1, Col: col},
				End:   source.Position{Line: 1, Col: col + len(name)},
			},
		})
	}
	doc, _ := docstring.Parse(raw)
	return d, doc
}

func run(t *testing.T, code diag.Code, d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	t.Helper()
	for _, c := range Registry() {
		if c.Code == code {
			return c.Run(d, doc)
		}
	}
	t.Fatalf("check %s not registered", code.ID())
	return nil
}

func TestSingleLineDocstringHasNoBlankLineDiagnostics(t *testing.T) {
	d, doc := fixture("Test")
	if got := run(t, diag.GLStartOnNewLine, d, doc); len(got) != 0 {
		t.Errorf("GL01 = %v, want none", got)
	}
	if got := run(t, diag.GLBlankBeforeClose, d, doc); len(got) != 0 {
		t.Errorf("GL02 = %v, want none", got)
	}
}

func TestStartOnNewLineAnchoredAfterOpeningQuotes(t *testing.T) {
	d, doc := fixture("Test\n\n    Extended summary.\n    ")
	got := run(t, diag.GLStartOnNewLine, d, doc)
	if len(got) != 1 {
		t.Fatalf("GL01 = %v, want one", got)
	}
	want := source.Position{Line: 2, Col: 8}
	if got[0].Span.Start != want {
		t.Errorf("anchor = %v, want %v", got[0].Span.Start, want)
	}
}

func TestBlankBeforeClose(t *testing.T) {
	d, doc := fixture("\n    Test.\n\n    ")
	if got := run(t, diag.GLBlankBeforeClose, d, doc); len(got) != 1 {
		t.Fatalf("GL02 = %v, want one", got)
	}
	d, doc = fixture("\n    Test.\n    ")
	if got := run(t, diag.GLBlankBeforeClose, d, doc); len(got) != 0 {
		t.Errorf("GL02 = %v, want none", got)
	}
}

func TestUnexpectedSectionAnchoredAtHeaderToken(t *testing.T) {
	d, doc := fixture("Summary.\n\n    Invalid\n    -------\n    Text.\n\n    Examples\n    --------\n    >>> f()\n    ")
	got := run(t, diag.GLUnexpectedSection, d, doc)
	if len(got) != 1 {
		t.Fatalf("GL06 = %v, want exactly one", got)
	}
	want := source.Between(
		source.Position{Line: 4, Col: 5},
		source.Position{Line: 4, Col: 5 + len("Invalid")},
	)
	if got[0].Span != want {
		t.Errorf("span = %v, want %v", got[0].Span, want)
	}
}

func TestSectionOrderPairwise(t *testing.T) {
	d, doc := fixture("Summary.\n\n    Returns\n    -------\n    int\n        Value.\n\n    Parameters\n    ----------\n    a : int\n        Desc.\n    ", "a")
	got := run(t, diag.GLSectionOrder, d, doc)
	if len(got) != 2 {
		t.Fatalf("GL07 = %v, want two (both positions disagree)", got)
	}
	if !strings.Contains(got[0].Suggestion, "`Parameters`") {
		t.Errorf("suggestion = %q", got[0].Suggestion)
	}
}

func TestUndocumentedParameters(t *testing.T) {
	d, doc := fixture("Summary.\n\n    Parameters\n    ----------\n    p : int\n        Desc.\n    x : int\n        Desc.\n    ", "p", "x", "y")
	got := run(t, diag.PRUndocumented, d, doc)
	if len(got) != 1 {
		t.Fatalf("PR01 = %v, want one", got)
	}
	if got[0].Span != d.Params[2].Span {
		t.Errorf("anchor = %v, want declaration span of y %v", got[0].Span, d.Params[2].Span)
	}

	// No Parameters section at all: one entry per undeclared parameter.
	d, doc = fixture("Summary.", "p", "x", "y")
	if got := run(t, diag.PRUndocumented, d, doc); len(got) != 3 {
		t.Errorf("PR01 without section = %v, want three", got)
	}
}

func TestTypePeriodZeroWidthAnchor(t *testing.T) {
	d, doc := fixture("Summary.\n\n    Parameters\n    ----------\n    aaa : int.\n        Desc.\n    ", "aaa")
	got := run(t, diag.PRTypePeriod, d, doc)
	if len(got) != 1 {
		t.Fatalf("PR05 = %v, want one", got)
	}
	want := source.At(source.Position{Line: 6, Col: 15})
	if got[0].Span != want {
		t.Errorf("span = %v, want zero-width %v", got[0].Span, want)
	}
}

func TestDuplicateDeprecationWarning(t *testing.T) {
	d, doc := fixture("Summary.\n\n    .. deprecated:: 1.0\n    More text.\n    .. deprecated:: 2.0\n    ")
	got := run(t, diag.GLDeprecatedDuplicate, d, doc)
	if len(got) != 1 {
		t.Fatalf("GL11 = %v, want exactly one (first marker on paragraph start)", got)
	}
	if got[0].Span.Start.Line != 6 {
		t.Errorf("offender line = %d, want 6", got[0].Span.Start.Line)
	}
}

func TestDeprecatedPlacement(t *testing.T) {
	d, doc := fixture("Summary.\n\n    Extended first.\n    .. deprecated:: 1.0\n    ")
	got := run(t, diag.GLDeprecatedPlacement, d, doc)
	if len(got) != 1 {
		t.Fatalf("GL09 = %v, want one", got)
	}
	if !strings.Contains(got[0].Suggestion, "line 4") {
		t.Errorf("suggestion = %q", got[0].Suggestion)
	}
}

func TestDirectiveMissingDoubleColon(t *testing.T) {
	d, doc := fixture("Summary.\n\n    .. versionadded: 1.0\n    ")
	got := run(t, diag.GLDirectiveColons, d, doc)
	if len(got) != 1 {
		t.Fatalf("GL10 = %v, want one", got)
	}
	d, doc = fixture("Summary.\n\n    .. versionadded:: 1.0\n    ")
	if got := run(t, diag.GLDirectiveColons, d, doc); len(got) != 0 {
		t.Errorf("GL10 = %v, want none for well-formed directive", got)
	}
}

func TestSummaryChecks(t *testing.T) {
	d, doc := fixture("\n    does things\n    ")
	if got := run(t, diag.SSCapitalization, d, doc); len(got) != 1 {
		t.Errorf("SS02 = %v, want one", got)
	}
	if got := run(t, diag.SSPeriod, d, doc); len(got) != 1 {
		t.Errorf("SS03 = %v, want one", got)
	}
	if got := run(t, diag.SSThirdPerson, d, doc); len(got) != 1 {
		t.Errorf("SS05 = %v, want one", got)
	}

	d, doc = fixture("\n    Does things.\n    More lines.\n    ")
	if got := run(t, diag.SSSingleLine, d, doc); len(got) != 1 {
		t.Errorf("SS06 = %v, want one", got)
	}
}

func TestNoSummaryYieldsNoSummaryStyleDiagnostics(t *testing.T) {
	d, doc := fixture("Parameters\n    ----------\n    a : int\n        Desc.\n    ", "a")
	if doc.Summary.Content != nil {
		t.Fatalf("summary = %+v, want none", doc.Summary.Content)
	}
	for _, code := range []diag.Code{diag.SSCapitalization, diag.SSPeriod, diag.SSIndentation, diag.SSThirdPerson, diag.SSSingleLine} {
		if got := run(t, code, d, doc); len(got) != 0 {
			t.Errorf("%s = %v, want none without a summary", code.ID(), got)
		}
	}
	if got := run(t, diag.SSMissing, d, doc); len(got) != 1 {
		t.Errorf("SS01 = %v, want one", got)
	}
}

func TestReturnsChecks(t *testing.T) {
	d, doc := fixture("Summary.")
	d.Returns = 1
	if got := run(t, diag.RTMissing, d, doc); len(got) != 1 {
		t.Errorf("RT01 = %v, want one", got)
	}

	d, doc = fixture("Summary.\n\n    Returns\n    -------\n    out : int\n        The value.\n    ")
	d.Returns = 1
	got := run(t, diag.RTNamedSingle, d, doc)
	if len(got) != 1 {
		t.Fatalf("RT02 = %v, want one", got)
	}
	if got[0].Message != "Single return should only contain the type." {
		t.Errorf("message = %q", got[0].Message)
	}

	d.Yields = 2
	if got := run(t, diag.YDMissing, d, doc); len(got) != 1 {
		t.Errorf("YD01 = %v, want one", got)
	}
}

func TestParamDescriptionChecks(t *testing.T) {
	text := "Summary.\n\n    Parameters\n    ----------\n    a : int\n    b : str\n        lowercase start\n    c : {}\n        Ends well.\n    "
	d, doc := fixture(text, "a", "b", "c")

	if got := run(t, diag.PRDescEmpty, d, doc); len(got) != 1 {
		t.Errorf("PR07 = %v, want one (a)", got)
	}
	if got := run(t, diag.PRDescUppercase, d, doc); len(got) != 1 {
		t.Errorf("PR08 = %v, want one (b)", got)
	}
	got := run(t, diag.PRDescPeriod, d, doc)
	if len(got) != 1 {
		t.Fatalf("PR09 = %v, want one (b)", got)
	}
	if !strings.Contains(got[0].Message, "`b`") {
		t.Errorf("PR09 message = %q", got[0].Message)
	}
	if got := run(t, diag.PRWrongType, d, doc); len(got) != 1 {
		t.Errorf("PR06 = %v, want one empty-choice (c)", got)
	}
}

func TestColonSpacing(t *testing.T) {
	d, doc := fixture("Summary.\n\n    Parameters\n    ----------\n    a: int\n        Desc.\n    ", "a")
	got := run(t, diag.PRColonSpacing, d, doc)
	if len(got) != 1 {
		t.Fatalf("PR10 = %v, want one", got)
	}
	want := source.Between(
		source.Position{Line: 6, Col: 5},
		source.Position{Line: 6, Col: 7},
	)
	if got[0].Span != want {
		t.Errorf("span = %v, want %v", got[0].Span, want)
	}
}

func TestOrderCheckSkipsOnCountMismatch(t *testing.T) {
	d, doc := fixture("Summary.\n\n    Parameters\n    ----------\n    b : int\n        Desc.\n    ", "a", "b")
	if got := run(t, diag.PROrder, d, doc); len(got) != 0 {
		t.Errorf("PR03 = %v, want none on count mismatch", got)
	}

	d, doc = fixture("Summary.\n\n    Parameters\n    ----------\n    b : int\n        Desc.\n    a : int\n        Desc.\n    ", "a", "b")
	if got := run(t, diag.PROrder, d, doc); len(got) != 2 {
		t.Errorf("PR03 = %v, want two", got)
	}
}

func TestRegistryIdempotent(t *testing.T) {
	d, doc := fixture("does stuff\n\n    Parameters\n    ----------\n    a: integer.\n\n        desc\n    ", "a", "b")
	collect := func() []diag.Diagnostic {
		var all []diag.Diagnostic
		for _, c := range Registry() {
			all = append(all, c.Run(d, doc)...)
		}
		return all
	}
	first, second := collect(), collect()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("check set is not idempotent:\n%v\n%v", first, second)
	}
}
