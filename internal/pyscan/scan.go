// Package pyscan extracts checkable declarations from Python source. It is
// a line-oriented scanner, not a full parser: it recovers def/class/module
// shapes, signatures, docstrings, and inline noqa directives, which is all
// the docstring validator consumes.
package pyscan

import (
	"regexp"
	"strings"

	"numdoc/internal/decl"
	"numdoc/internal/source"
)

var (
	defPattern      = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	classPattern    = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_]\w*)\s*[(:]`)
	constantPattern = regexp.MustCompile(`^([A-Z_][A-Z0-9_]*)\s*(?::[^=]+)?=`)
	noqaPattern     = regexp.MustCompile(`#\s*noqa:\s*([\w,\s]+)$`)
	codePattern     = regexp.MustCompile(`\w+`)

	returnPattern = regexp.MustCompile(`^\s*return\b`)
	yieldPattern  = regexp.MustCompile(`(^|[^\w])yield\b`)
	raisePattern  = regexp.MustCompile(`^\s*raise\b`)
)

// Scan returns the declarations of one Python file in source order, the
// module itself first.
func Scan(file *source.File) []*decl.Declaration {
	s := &scanner{lines: file.Lines}
	return s.scan()
}

type scanner struct {
	lines []string
}

type openClass struct {
	indent int
	class  *decl.Declaration
}

func (s *scanner) scan() []*decl.Declaration {
	decls := []*decl.Declaration{s.module()}

	var stack []openClass
	for i := 0; i < len(s.lines); i++ {
		line := s.lines[i]
		if strings.TrimSpace(line) != "" {
			ind := indentOf(line)
			for len(stack) > 0 && ind <= stack[len(stack)-1].indent {
				stack = stack[:len(stack)-1]
			}
		}

		if m := classPattern.FindStringSubmatch(line); m != nil {
			cd := s.classDecl(i, len(m[1]), m[2])
			decls = append(decls, cd)
			stack = append(stack, openClass{indent: len(m[1]), class: cd})
			continue
		}

		if m := defPattern.FindStringSubmatchIndex(line); m != nil {
			var owner *decl.Declaration
			ind := m[3] - m[2]
			if len(stack) > 0 && stack[len(stack)-1].indent < ind {
				owner = stack[len(stack)-1].class
			}
			fd, endSig := s.funcDecl(i, m, owner)
			decls = append(decls, fd)
			i = endSig
			continue
		}

		if len(stack) == 0 {
			if cd, ok := s.constantDecl(i); ok {
				decls = append(decls, cd)
			}
		}
	}
	return decls
}

// module builds the whole-file declaration. The module docstring is the
// first statement when it is a string literal.
func (s *scanner) module() *decl.Declaration {
	d := &decl.Declaration{
		Kind: decl.Module,
		Span: source.Span{
			Start: source.Position{Line: 1, Col: 1},
			End:   source.Position{Line: len(s.lines), Col: len(lastLine(s.lines)) + 1},
		},
	}
	for i, line := range s.lines {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		if doc, _, ok := s.docstringAt(i); ok && indentOf(line) == 0 {
			d.Doc = doc
			d.Noqa = s.noqaAbove(i)
		}
		break
	}
	return d
}

func (s *scanner) classDecl(i, indent int, name string) *decl.Declaration {
	line := s.lines[i]
	nameCol := strings.Index(line, name) + 1
	d := &decl.Declaration{
		Kind: decl.Class,
		Name: &decl.Name{
			Value: name,
			Span: source.Span{
				Start: source.Position{Line: i + 1, Col: nameCol},
				End:   source.Position{Line: i + 1, Col: nameCol + len(name)},
			},
		},
		Noqa: s.declNoqa(i),
	}
	bodyEnd := s.blockEnd(i+1, indent)
	d.Span = source.Span{
		Start: source.Position{Line: i + 1, Col: indent + 1},
		End:   source.Position{Line: bodyEnd, Col: len(s.lines[bodyEnd-1]) + 1},
	}
	if doc, _, ok := s.bodyDocstring(i+1, indent); ok {
		d.Doc = doc
	}
	return d
}

// funcDecl parses one def. owner is the enclosing class when the def is a
// direct member; its receiver parameter is dropped the way numpydoc expects,
// and an __init__ signature also becomes the class's documented parameters.
func (s *scanner) funcDecl(i int, m []int, owner *decl.Declaration) (*decl.Declaration, int) {
	line := s.lines[i]
	indent := m[3] - m[2]
	name := line[m[4]:m[5]]

	kind := decl.Function
	if owner != nil {
		kind = decl.Method
	}

	d := &decl.Declaration{
		Kind: kind,
		Name: &decl.Name{
			Value: name,
			Span: source.Span{
				Start: source.Position{Line: i + 1, Col: m[4] + 1},
				End:   source.Position{Line: i + 1, Col: m[5] + 1},
			},
		},
		Noqa: s.declNoqa(i),
	}

	params, endSig := s.parseSignature(i, m[1]-1)
	if kind == decl.Method && len(params) > 0 && params[0].StarCount == 0 {
		params = params[1:]
	}
	d.Params = params
	if owner != nil && name == "__init__" {
		owner.Params = params
	}

	bodyEnd := s.blockEnd(endSig+1, indent)
	d.Span = source.Span{
		Start: source.Position{Line: i + 1, Col: indent + 1},
		End:   source.Position{Line: bodyEnd, Col: len(s.lines[bodyEnd-1]) + 1},
	}

	var docEnd int
	if doc, end, ok := s.bodyDocstring(endSig+1, indent); ok {
		d.Doc = doc
		docEnd = end
	}
	d.Returns, d.Yields, d.Raises = s.countBody(endSig+1, indent, docEnd)
	return d, endSig
}

// constantDecl recognizes a module-level UPPER_CASE assignment documented by
// a string literal on the following statement.
func (s *scanner) constantDecl(i int) (*decl.Declaration, bool) {
	line := s.lines[i]
	m := constantPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, false
	}
	j := i + 1
	for j < len(s.lines) && strings.TrimSpace(s.lines[j]) == "" {
		j++
	}
	if j >= len(s.lines) || indentOf(s.lines[j]) != 0 {
		return nil, false
	}
	doc, _, ok := s.docstringAt(j)
	if !ok {
		return nil, false
	}

	name := line[m[2]:m[3]]
	return &decl.Declaration{
		Kind: decl.Constant,
		Name: &decl.Name{
			Value: name,
			Span: source.Span{
				Start: source.Position{Line: i + 1, Col: m[2] + 1},
				End:   source.Position{Line: i + 1, Col: m[3] + 1},
			},
		},
		Span: source.Span{
			Start: source.Position{Line: i + 1, Col: 1},
			End:   doc.Span.End,
		},
		Noqa: s.declNoqa(i),
		Doc:  doc,
	}, true
}

// declNoqa reads codes from a trailing comment on the declaration line or
// from a comment line directly above it (decorators in between are skipped).
func (s *scanner) declNoqa(i int) []string {
	if codes := noqaCodes(s.lines[i]); codes != nil {
		return codes
	}
	for j := i - 1; j >= 0; j-- {
		t := strings.TrimSpace(s.lines[j])
		if strings.HasPrefix(t, "@") {
			continue
		}
		if strings.HasPrefix(t, "#") {
			return noqaCodes(t)
		}
		return nil
	}
	return nil
}

func noqaCodes(line string) []string {
	m := noqaPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return codePattern.FindAllString(m[1], -1)
}

// noqaAbove reads codes from the comment block preceding line i.
func (s *scanner) noqaAbove(i int) []string {
	for j := i - 1; j >= 0; j-- {
		t := strings.TrimSpace(s.lines[j])
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "#") {
			return noqaCodes(t)
		}
		return nil
	}
	return nil
}

// blockEnd returns the 1-based line number of the last line belonging to a
// block opened at baseIndent.
func (s *scanner) blockEnd(start, baseIndent int) int {
	last := start
	if last > len(s.lines) {
		last = len(s.lines)
	}
	for j := start; j < len(s.lines); j++ {
		t := strings.TrimSpace(s.lines[j])
		if t == "" {
			continue
		}
		if indentOf(s.lines[j]) <= baseIndent {
			break
		}
		last = j + 1
	}
	if last < 1 {
		last = 1
	}
	return last
}

// countBody tallies return/yield/raise statements in a block, skipping the
// docstring lines (docEnd is its last 1-based line, 0 when absent) and any
// nested def blocks.
func (s *scanner) countBody(start, baseIndent, docEnd int) (returns, yields, raises int) {
	for j := start; j < len(s.lines); j++ {
		line := s.lines[j]
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		ind := indentOf(line)
		if ind <= baseIndent {
			break
		}
		if j+1 <= docEnd {
			continue
		}
		if defPattern.MatchString(line) {
			j = s.blockEnd(j+1, ind) - 1
			continue
		}
		if returnPattern.MatchString(line) {
			returns++
		}
		if yieldPattern.MatchString(line) {
			yields++
		}
		if raisePattern.MatchString(line) {
			raises++
		}
	}
	return returns, yields, raises
}

// bodyDocstring finds the docstring opening a block: the first non-blank,
// non-comment body statement when it is a string literal.
func (s *scanner) bodyDocstring(start, baseIndent int) (*decl.RawDoc, int, bool) {
	for j := start; j < len(s.lines); j++ {
		t := strings.TrimSpace(s.lines[j])
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		if indentOf(s.lines[j]) <= baseIndent {
			return nil, 0, false
		}
		return s.docstringAt(j)
	}
	return nil, 0, false
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func lastLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
