package docstring

import (
	"strings"
	"testing"

	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/source"
)

// rawDoc builds a docstring as it would appear starting at line 2, column 5
// of a file, inside triple quotes with a 4-space body indent.
func rawDoc(text string) *decl.RawDoc {
	lineCount := strings.Count(text, "\n")
	endCol := len(text) - strings.LastIndexByte(text, '\n')
	if lineCount == 0 {
		endCol = 5 + 3 + len(text)
	}
	return &decl.RawDoc{
		Span: source.Span{
			Start: source.Position{Line: 2, Col: 5},
			End:   source.Position{Line: 2 + lineCount, Col: endCol + 3},
		},
		Indent:  4,
		OpenLen: 3,
		Text:    text,
	}
}

func TestParseRoundTrip(t *testing.T) {
	texts := []string{
		"Short summary.",
		"Short summary.\n\n    Extended.\n    ",
		"\n    Summary.\n\n    Parameters\n    ----------\n    a : int\n        Desc.\n    ",
	}
	for _, text := range texts {
		d, _ := Parse(rawDoc(text))
		parts := make([]string, len(d.Lines))
		for i, l := range d.Lines {
			parts[i] = l.Text
		}
		if got := strings.Join(parts, "\n"); got != text {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", got, text)
		}
	}
}

func TestParseSummaryAndExtended(t *testing.T) {
	d, diags := Parse(rawDoc("Do the thing.\n\n    Longer story about\n    the thing.\n    "))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if d.Summary.Content == nil {
		t.Fatal("summary content not parsed")
	}
	if got := d.Summary.Content.Lines[0].Text; got != "Do the thing." {
		t.Errorf("summary = %q", got)
	}
	want := source.Position{Line: 2, Col: 8}
	if d.Summary.Content.Lines[0].Pos != want {
		t.Errorf("summary pos = %v, want %v", d.Summary.Content.Lines[0].Pos, want)
	}
	if d.Summary.Extended == nil || len(d.Summary.Extended.Lines) != 2 {
		t.Fatalf("extended = %+v", d.Summary.Extended)
	}
}

func TestParseSummarySkipsSignatureEcho(t *testing.T) {
	d, _ := Parse(rawDoc("\n    obj.frobnicate(a, b)\n\n    Frobnicate things.\n    "))
	if d.Summary.Content == nil {
		t.Fatal("summary content not parsed")
	}
	if got := trimSpace(d.Summary.Content.Lines[0].Text); got != "Frobnicate things." {
		t.Errorf("summary = %q, want text after signature echo", got)
	}
}

func TestParseSectionStraightToHeader(t *testing.T) {
	d, _ := Parse(rawDoc("Parameters\n    ----------\n    a : int\n    "))
	if d.Summary.Content != nil {
		t.Errorf("summary should be empty, got %+v", d.Summary.Content)
	}
	sec := d.Section("Parameters")
	if sec == nil {
		t.Fatal("Parameters section not parsed")
	}
	if !sec.ValidUnderline {
		t.Error("underline should be valid")
	}
}

func TestParseUnderlineLengthMismatch(t *testing.T) {
	_, diags := Parse(rawDoc("Summary.\n\n    Returns\n    ----\n    int\n    "))
	if len(diags) != 1 || diags[0].Code != diag.ERUnderlineLength {
		t.Fatalf("diags = %v, want one ER02", diags)
	}
	want := source.Between(
		source.Position{Line: 5, Col: 5},
		source.Position{Line: 5, Col: 9},
	)
	if diags[0].Span != want {
		t.Errorf("span = %v, want %v", diags[0].Span, want)
	}
}

func TestParseMissingBlankBeforeSection(t *testing.T) {
	_, diags := Parse(rawDoc("Summary.\n    Parameters\n    ----------\n    a : int\n    "))
	if len(diags) != 1 || diags[0].Code != diag.ERMissingBlankBeforeSection {
		t.Fatalf("diags = %v, want one ER01", diags)
	}
	if got := (source.Position{Line: 3, Col: 5}); diags[0].Span.Start != got {
		t.Errorf("span start = %v, want %v", diags[0].Span.Start, got)
	}
}

func TestParseParameterPositions(t *testing.T) {
	d, _ := Parse(rawDoc("Summary.\n\n    Parameters\n    ----------\n    data : int or str, optional\n        The payload.\n    "))
	sec := d.Section("Parameters")
	if sec == nil || len(sec.Params) != 1 {
		t.Fatalf("params = %+v", sec)
	}
	p := sec.Params[0]
	if p.Name == nil || p.Name.Value != "data" {
		t.Fatalf("name = %+v", p.Name)
	}
	wantName := source.Between(
		source.Position{Line: 6, Col: 5},
		source.Position{Line: 6, Col: 9},
	)
	if p.Name.Span != wantName {
		t.Errorf("name span = %v, want %v", p.Name.Span, wantName)
	}
	if len(p.Types) != 2 || p.Types[0].Value != "int" || p.Types[1].Value != "str" {
		t.Fatalf("types = %+v", p.Types)
	}
	if p.OptionalCount != 1 {
		t.Errorf("optional count = %d", p.OptionalCount)
	}
	if got := p.Description.Lines[0].Text; got != "    The payload." {
		t.Errorf("description line = %q", got)
	}
}

func TestParseBareTypeEntries(t *testing.T) {
	d, _ := Parse(rawDoc("Summary.\n\n    Returns\n    -------\n    int\n        Count of rows.\n    "))
	sec := d.Section("Returns")
	if sec == nil || len(sec.Params) != 1 {
		t.Fatalf("returns = %+v", sec)
	}
	p := sec.Params[0]
	if p.Name != nil {
		t.Errorf("bare type entry should have no name, got %+v", p.Name)
	}
	if len(p.Types) != 1 || p.Types[0].Value != "int" {
		t.Errorf("types = %+v", p.Types)
	}
}

func TestParseExceptionSectionsUseTypeEntries(t *testing.T) {
	cases := []struct {
		section  string
		wantType string
	}{
		{"Raises", "ValueError"},
		{"Warns", "UserWarning"},
		{"Receives", "int"},
	}
	for _, c := range cases {
		t.Run(c.section, func(t *testing.T) {
			underline := strings.Repeat("-", len(c.section))
			text := "Summary.\n\n    " + c.section + "\n    " + underline +
				"\n    " + c.wantType + "\n        If the input is bad.\n    "
			d, _ := Parse(rawDoc(text))
			sec := d.Section(c.section)
			if sec == nil || len(sec.Params) != 1 {
				t.Fatalf("section = %+v", sec)
			}
			p := sec.Params[0]
			if p.Name != nil {
				t.Errorf("bare entry should have no name, got %+v", p.Name)
			}
			if len(p.Types) != 1 || p.Types[0].Value != c.wantType {
				t.Errorf("types = %+v, want [%s]", p.Types, c.wantType)
			}
		})
	}
}

func TestTokenizeTypes(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"int", []string{"int"}},
		{"int or str", []string{"int", "str"}},
		{"int, str", []string{"int", "str"}},
		{"{'red', 'blue'}, optional", []string{"{'red', 'blue'}"}},
		{"tuple of (int, str)", []string{"tuple of (int, str)"}},
		{"ndarray or None, default None", []string{"ndarray", "None", "default None"}},
		{"", nil},
	}
	for _, c := range cases {
		segs := tokenizeTypes(c.in)
		got := make([]string, 0, len(segs))
		for _, s := range segs {
			got = append(got, s.val)
		}
		if len(got) != len(c.want) {
			t.Errorf("tokenizeTypes(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("tokenizeTypes(%q)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestParseSeeAlsoEntries(t *testing.T) {
	d, diags := Parse(rawDoc("Summary.\n\n    See Also\n    --------\n    frobnicate : Do it once.\n    refine, polish\n        Shared description\n        over two lines.\n    "))
	sec := d.Section("See Also")
	if sec == nil {
		t.Fatal("See Also section not parsed")
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(sec.SeeAlso) != 2 {
		t.Fatalf("entries = %+v", sec.SeeAlso)
	}
	if sec.SeeAlso[0].Refs[0].Name != "frobnicate" || sec.SeeAlso[0].Description[0] != "Do it once." {
		t.Errorf("entry 0 = %+v", sec.SeeAlso[0])
	}
	e := sec.SeeAlso[1]
	if len(e.Refs) != 2 || e.Refs[0].Name != "refine" || e.Refs[1].Name != "polish" {
		t.Errorf("entry 1 refs = %+v", e.Refs)
	}
	if len(e.Description) != 2 {
		t.Errorf("entry 1 description = %+v", e.Description)
	}
}

func TestParseSeeAlsoRoleAndSeparator(t *testing.T) {
	d, diags := Parse(rawDoc("Summary.\n\n    See Also\n    --------\n    :meth:`mod.frobnicate`. : Trailing period.\n    "))
	sec := d.Section("See Also")
	if sec == nil || len(sec.SeeAlso) != 1 {
		t.Fatalf("entries = %+v", sec)
	}
	ref := sec.SeeAlso[0].Refs[0]
	if ref.Name != "mod.frobnicate" || ref.Role != "meth" {
		t.Errorf("ref = %+v", ref)
	}
	if len(diags) != 1 || diags[0].Code != diag.SAUnexpectedSeparator {
		t.Fatalf("diags = %v, want one SA01", diags)
	}
}

func TestIsAtSectionBoundary(t *testing.T) {
	cases := []struct {
		lines []string
		want  bool
	}{
		{[]string{"    Parameters", "    ----------"}, true},
		{[]string{"    Parameters", "", "    ----------"}, true},
		{[]string{"    Parameters", "    ------"}, true}, // length mismatch still a boundary
		{[]string{"    Just text", "    more text"}, false},
		{[]string{"    .. index:: foo"}, true},
		{[]string{""}, false},
	}
	for _, c := range cases {
		lines := make([]Line, len(c.lines))
		for i, t := range c.lines {
			lines[i] = Line{Pos: source.Position{Line: i + 1, Col: 1}, Text: t}
		}
		r := NewReader(lines)
		if got := r.IsAtSectionBoundary(); got != c.want {
			t.Errorf("IsAtSectionBoundary(%q) = %v, want %v", c.lines, got, c.want)
		}
	}
}
