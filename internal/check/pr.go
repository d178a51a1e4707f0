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

// typeSpellings maps discouraged type names to the numpydoc spelling.
var typeSpellings = map[string]string{
	"integer": "int",
	"boolean": "bool",
	"string":  "str",
}

var (
	emptyChoicePattern  = regexp.MustCompile(`^\{\s*\}`)
	colonSpacingPattern = regexp.MustCompile(`(\S:|:\S|:\s*$|^\s*:)`)
)

// paramSection returns the Parameters section for declarations the
// parameter family applies to, plus whether the family applies at all.
func paramSection(d *decl.Declaration, doc *docstring.DocString) (*docstring.Section, bool) {
	if !d.TakesParameters() {
		return nil, false
	}
	return doc.Section("Parameters"), true
}

func checkParamsDocumented(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok {
		return nil
	}
	documented := make(map[string]bool)
	if sec != nil {
		for i := range sec.Params {
			documented[entryName(&sec.Params[i])] = true
		}
	}

	var out []diag.Diagnostic
	for _, p := range d.Params {
		name := declaredName(p)
		if !documented[name] {
			out = append(out, diag.New(diag.PRUndocumented, p.Span,
				fmt.Sprintf("Parameter `%s` should be documented.", name)).
				WithSuggestion(fmt.Sprintf("Add documentation for `%s`.", name)))
		}
	}
	return out
}

func checkParamsDeclared(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil {
		return nil
	}
	declared := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		declared[declaredName(p)] = true
	}

	var out []diag.Diagnostic
	for i := range sec.Params {
		p := &sec.Params[i]
		name := entryName(p)
		if !declared[name] {
			out = append(out, diag.New(diag.PRUndeclared, p.Anchor().Span,
				fmt.Sprintf("Parameter `%s` does not exist in the declaration.", name)).
				WithSuggestion(fmt.Sprintf("Remove or declare `%s`.", name)))
		}
	}
	return out
}

// checkParamsOrder compares positions pairwise. A documented/declared count
// mismatch skips the check entirely instead of attempting an alignment.
func checkParamsOrder(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil || len(sec.Params) != len(d.Params) {
		return nil
	}
	var out []diag.Diagnostic
	for i := range sec.Params {
		p := &sec.Params[i]
		want := declaredName(d.Params[i])
		if entryName(p) != want {
			out = append(out, diag.New(diag.PROrder, p.Anchor().Span,
				fmt.Sprintf("The parameter `%s` is in wrong order.", entryName(p))).
				WithSuggestion(fmt.Sprintf("The parameter should be `%s`.", want)))
		}
	}
	return out
}

func checkParamType(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := range sec.Params {
		p := &sec.Params[i]
		if len(p.Types) > 0 || p.OptionalCount > 0 {
			continue
		}
		suggestion := "Add a type declaration."
		for _, dp := range d.Params {
			if declaredName(dp) == entryName(p) && dp.Annotation != "" {
				suggestion = fmt.Sprintf("Add the type declaration `%s`.", dp.Annotation)
				break
			}
		}
		out = append(out, diag.New(diag.PRMissingType, p.Anchor().Span,
			fmt.Sprintf("Parameter `%s` should have a type.", entryName(p))).
			WithSuggestion(suggestion))
	}
	return out
}

func checkParamTypePeriod(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := range sec.Params {
		p := &sec.Params[i]
		if len(p.Types) == 0 {
			continue
		}
		last := p.Types[len(p.Types)-1]
		if !strings.HasSuffix(strings.TrimSpace(last.Value), ".") {
			continue
		}
		out = append(out, diag.New(diag.PRTypePeriod, source.At(last.Span.End),
			fmt.Sprintf("Parameter `%s` type should not finish with `.`.", entryName(p))).
			WithSuggestion("Remove `.`."))
	}
	return out
}

func checkParamTypeSpelling(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := range sec.Params {
		p := &sec.Params[i]
		for _, typ := range p.Types {
			if want, bad := typeSpellings[typ.Value]; bad {
				out = append(out, diag.New(diag.PRWrongType, typ.Span,
					fmt.Sprintf("Parameter `%s` uses wrong type `%s` instead of `%s`.",
						entryName(p), typ.Value, want)).
					WithSuggestion(fmt.Sprintf("Use `%s` instead of `%s`.", want, typ.Value)))
			} else if emptyChoicePattern.MatchString(typ.Value) {
				out = append(out, diag.New(diag.PRWrongType, typ.Span,
					fmt.Sprintf("Parameter `%s` uses empty choice.", entryName(p))).
					WithSuggestion("Insert choices."))
			}
		}
	}
	return out
}

func checkParamDescription(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachParam(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		return checkDescMissing(p, diag.PRDescEmpty,
			fmt.Sprintf("Parameter `%s` has no description.", entryName(p)))
	})
}

func checkParamDescUppercase(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachParam(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		return checkDescUppercase(p, diag.PRDescUppercase,
			fmt.Sprintf("Parameter `%s` description should start with uppercase letter.", entryName(p)))
	})
}

func checkParamDescPeriod(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachParam(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		return checkDescPeriod(p, doc.Indent, diag.PRDescPeriod,
			fmt.Sprintf("Parameter `%s` description should end with period.", entryName(p)))
	})
}

func checkParamColonSpacing(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := range sec.Params {
		p := &sec.Params[i]
		for _, m := range colonSpacingPattern.FindAllStringSubmatchIndex(p.Header, -1) {
			out = append(out, diag.New(diag.PRColonSpacing,
				source.Between(p.HeaderPos.Move(0, m[2]), p.HeaderPos.Move(0, m[3])),
				fmt.Sprintf("Parameter `%s` requires a space between name and type.", entryName(p))).
				WithSuggestion("Insert a space before and/or after `:`."))
		}
	}
	return out
}

func checkParamDescBlankPrefix(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachParam(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		if len(p.Description.Lines) == 0 || emptyPrefixLines(p.Description.Lines) == 0 {
			return nil
		}
		return []diag.Diagnostic{
			diag.New(diag.PRDescBlankPrefix, p.Anchor().Span,
				fmt.Sprintf("Parameter `%s` description has empty prefix lines.", entryName(p))).
				WithSuggestion("Remove empty lines."),
		}
	})
}

// checkParamDescBlankSuffix skips the last entry: its trailing blanks merge
// into the whitespace that separates the section from the next one.
func checkParamDescBlankSuffix(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := 0; i < len(sec.Params)-1; i++ {
		p := &sec.Params[i]
		if len(p.Description.Lines) == 0 || emptySuffixLines(p.Description.Lines) == 0 {
			continue
		}
		out = append(out, diag.New(diag.PRDescBlankSuffix, p.Anchor().Span,
			fmt.Sprintf("Parameter `%s` description has empty suffix lines.", entryName(p))).
			WithSuggestion("Remove empty lines."))
	}
	return out
}

func checkParamOptionalRepeated(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachParam(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		if p.OptionalCount <= 1 {
			return nil
		}
		return []diag.Diagnostic{
			diag.New(diag.PROptionalRepeated, p.Anchor().Span,
				fmt.Sprintf("Parameter `%s` specifies optional multiple times.", entryName(p))).
				WithSuggestion("Remove duplicate `optional`."),
		}
	})
}

func forEachParam(d *decl.Declaration, doc *docstring.DocString, f func(*docstring.Parameter) []diag.Diagnostic) []diag.Diagnostic {
	sec, ok := paramSection(d, doc)
	if !ok || sec == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := range sec.Params {
		out = append(out, f(&sec.Params[i])...)
	}
	return out
}
