package check

import (
	"fmt"

	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/docstring"
	"numdoc/internal/source"
)

func checkReturnsMissing(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if !d.Callable() || d.Returns == 0 || doc.Section("Returns") != nil {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.RTMissing, source.At(doc.Span.End), "No return section found.").
			WithSuggestion("Declare return section."),
	}
}

func checkReturnsNamedSingle(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if !d.Callable() {
		return nil
	}
	sec := doc.Section("Returns")
	if sec == nil || len(sec.Params) != 1 || sec.Params[0].Name == nil {
		return nil
	}
	name := sec.Params[0].Name
	return []diag.Diagnostic{
		diag.New(diag.RTNamedSingle, name.Span,
			"Single return should only contain the type.").
			WithSuggestion(fmt.Sprintf("Remove the name `%s`.", name.Value)),
	}
}

func forEachReturn(d *decl.Declaration, doc *docstring.DocString, f func(*docstring.Parameter) []diag.Diagnostic) []diag.Diagnostic {
	if !d.Callable() {
		return nil
	}
	sec := doc.Section("Returns")
	if sec == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := range sec.Params {
		out = append(out, f(&sec.Params[i])...)
	}
	return out
}

func checkReturnDescription(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachReturn(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		return checkDescMissing(p, diag.RTDescEmpty,
			fmt.Sprintf("Return `%s` has no description.", entryName(p)))
	})
}

func checkReturnDescUppercase(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachReturn(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		return checkDescUppercase(p, diag.RTDescUppercase,
			fmt.Sprintf("Return `%s` description should start with uppercase letter.", entryName(p)))
	})
}

func checkReturnDescPeriod(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	return forEachReturn(d, doc, func(p *docstring.Parameter) []diag.Diagnostic {
		return checkDescPeriod(p, doc.Indent, diag.RTDescPeriod,
			fmt.Sprintf("Return `%s` description should end with period.", entryName(p)))
	})
}

func checkYieldsMissing(d *decl.Declaration, doc *docstring.DocString) []diag.Diagnostic {
	if !d.Callable() || d.Yields == 0 || doc.Section("Yields") != nil {
		return nil
	}
	return []diag.Diagnostic{
		diag.New(diag.YDMissing, doc.Span, "No yields section found.").
			WithSuggestion("Add a Yields section"),
	}
}
