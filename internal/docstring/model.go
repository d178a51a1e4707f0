// Package docstring implements the numpydoc docstring grammar: a
// line-oriented scanner that recovers summary, extended-summary, and typed
// section structure from free text with 1-based line/column fidelity.
//
// The parser never fails on malformed input. It degrades to best-effort
// segmentation and reports malformations (bad underline length, missing
// blank line before a section, stray see-also separators) as diagnostics
// alongside the recovered document.
package docstring

import (
	"numdoc/internal/source"
)

// Line is one physical docstring line with its absolute position. The first
// line's position points at the first character after the opening delimiter;
// every other line starts at column 1 of its physical line.
type Line struct {
	Pos  source.Position
	Text string
}

// Blank reports whether the line holds only whitespace.
func (l Line) Blank() bool {
	return trimSpace(l.Text) == ""
}

// End returns the position one past the last character of the line.
func (l Line) End() source.Position {
	return l.Pos.Move(0, len(l.Text))
}

// Paragraph is a positioned run of lines.
type Paragraph struct {
	Span  source.Span
	Lines []Line
}

func newParagraph(lines []Line) Paragraph {
	if len(lines) == 0 {
		return Paragraph{}
	}
	last := lines[len(lines)-1]
	return Paragraph{
		Span:  source.Between(lines[0].Pos, last.End()),
		Lines: lines,
	}
}

// Empty reports whether the paragraph holds no lines.
func (p *Paragraph) Empty() bool {
	return p == nil || len(p.Lines) == 0
}

// Summary is the first paragraph of a docstring plus the optional extended
// paragraph(s) before the first section. Content is nil when the docstring's
// first non-blank construct is already a section header.
type Summary struct {
	Content  *Paragraph
	Extended *Paragraph
}

// Token is a positioned piece of text: a section name, a parameter name, or
// one type expression.
type Token struct {
	Span  source.Span
	Value string
}

// Parameter is one documented entry of a Parameters-like section. For
// Returns-like sections a bare type with no name leaves Name nil and puts
// the sole token in Types.
type Parameter struct {
	Span          source.Span
	Header        string // de-indented header line
	HeaderPos     source.Position
	Name          *Token
	Types         []Token
	OptionalCount int
	Description   Paragraph
}

// Anchor returns the token diagnostics about this entry attach to: the name
// when present, otherwise the first type token.
func (p *Parameter) Anchor() Token {
	if p.Name != nil {
		return *p.Name
	}
	if len(p.Types) > 0 {
		return p.Types[0]
	}
	return Token{Span: source.At(p.HeaderPos)}
}

// DisplayName returns the entry name used in diagnostic messages.
func (p *Parameter) DisplayName() string {
	return p.Anchor().Value
}

// SeeAlsoRef is one cross-reference name with its optional role marker.
type SeeAlsoRef struct {
	Name string
	Role string
}

// SeeAlsoEntry is one documented cross-reference group.
type SeeAlsoEntry struct {
	Refs        []SeeAlsoRef
	Description []string
}

// Section is one named, underlined sub-block of a docstring. Exactly one of
// Params, SeeAlso, or Text is populated, depending on the section name
// taxonomy.
type Section struct {
	Name           Token
	ValidUnderline bool
	Params         []Parameter
	SeeAlso        []SeeAlsoEntry
	Text           []Line
	ContentSpan    source.Span
}

// DocString is the immutable document model of one docstring. It is built
// exactly once per declaration and shared by every check.
type DocString struct {
	Span    source.Span
	Indent  int
	Raw     string
	Lines   []Line
	Summary Summary

	Sections []Section
	byName   map[string]int
}

// Section returns the last section with the given name, or nil.
func (d *DocString) Section(name string) *Section {
	if i, ok := d.byName[name]; ok {
		return &d.Sections[i]
	}
	return nil
}

// Multiline reports whether the docstring spans more than one physical line.
func (d *DocString) Multiline() bool {
	return len(d.Lines) > 1
}
