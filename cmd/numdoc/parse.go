package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"numdoc/internal/decl"
	"numdoc/internal/docstring"
	"numdoc/internal/pyscan"
	"numdoc/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.py>",
	Short: "Dump the recovered docstring model for a Python file",
	Long:  `Parse a Python file and print every declaration with the docstring structure the linter recovers: summary, sections, and positioned entries`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", args[0], err)
	}
	file := fileSet.Get(id)

	out := cmd.OutOrStdout()
	for _, d := range pyscan.Scan(file) {
		dumpDeclaration(out, d)
	}
	return nil
}

func dumpDeclaration(out io.Writer, d *decl.Declaration) {
	name := "<module>"
	if d.Name != nil {
		name = d.Name.Value
	}
	fmt.Fprintf(out, "%s %s %s\n", d.Kind, name, d.Span)

	if len(d.Params) > 0 {
		names := make([]string, len(d.Params))
		for i, p := range d.Params {
			names[i] = strings.Repeat("*", p.StarCount) + p.Name
		}
		fmt.Fprintf(out, "  signature: (%s)\n", strings.Join(names, ", "))
	}
	if d.Doc == nil {
		fmt.Fprintf(out, "  docstring: none\n")
		return
	}

	doc, diags := docstring.Parse(d.Doc)
	fmt.Fprintf(out, "  docstring: %s indent=%d\n", doc.Span, doc.Indent)
	if !doc.Summary.Content.Empty() {
		fmt.Fprintf(out, "  summary: %s %q\n", doc.Summary.Content.Span, paragraphText(doc.Summary.Content))
	}
	if !doc.Summary.Extended.Empty() {
		fmt.Fprintf(out, "  extended: %s\n", doc.Summary.Extended.Span)
	}
	for i := range doc.Sections {
		dumpSection(out, &doc.Sections[i])
	}
	for _, dg := range diags {
		fmt.Fprintf(out, "  !%s %s %s\n", dg.Code.ID(), dg.Span, dg.Message)
	}
}

func dumpSection(out io.Writer, s *docstring.Section) {
	fmt.Fprintf(out, "  section %s %s", s.Name.Value, s.Name.Span)
	if !s.ValidUnderline {
		fmt.Fprint(out, " (bad underline)")
	}
	fmt.Fprintln(out)

	for i := range s.Params {
		p := &s.Params[i]
		types := make([]string, len(p.Types))
		for j, t := range p.Types {
			types[j] = t.Value
		}
		fmt.Fprintf(out, "    entry %s %s types=[%s]", p.DisplayName(), p.Anchor().Span, strings.Join(types, ", "))
		if p.OptionalCount > 0 {
			fmt.Fprintf(out, " optional=%d", p.OptionalCount)
		}
		if p.Description.Empty() {
			fmt.Fprint(out, " (no description)")
		}
		fmt.Fprintln(out)
	}
	for _, e := range s.SeeAlso {
		refs := make([]string, len(e.Refs))
		for j, r := range e.Refs {
			refs[j] = r.Name
		}
		fmt.Fprintf(out, "    see also: %s\n", strings.Join(refs, ", "))
	}
}

func paragraphText(p *docstring.Paragraph) string {
	if p.Empty() {
		return ""
	}
	parts := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		parts[i] = strings.TrimSpace(l.Text)
	}
	return strings.Join(parts, " ")
}
