package docstring

import (
	"strings"

	"numdoc/internal/source"
)

// parseParameterList recovers the entries of a Parameters-like section body.
// Entry headers sit at the section indent; description lines are everything
// after the header that is blank or indented deeper. When typeOnly is set a
// header with no colon documents a bare type rather than a name.
func parseParameterList(body []Line, indent int, typeOnly bool) []Parameter {
	deind := make([]string, len(body))
	for i, l := range body {
		deind[i] = deindent(l.Text, indent)
	}

	var params []Parameter
	for i := 0; i < len(body); i++ {
		if trimSpace(deind[i]) == "" {
			continue
		}
		p := parseEntryHeader(body[i], deind[i], indent, typeOnly)

		j := i + 1
		for j < len(body) {
			t := deind[j]
			if trimSpace(t) != "" && !strings.HasPrefix(t, " ") && !strings.HasPrefix(t, "\t") {
				break
			}
			j++
		}
		descLines := make([]Line, 0, j-i-1)
		for k := i + 1; k < j; k++ {
			descLines = append(descLines, Line{
				Pos:  source.Position{Line: body[k].Pos.Line, Col: indent + 1},
				Text: deind[k],
			})
		}
		if len(descLines) > 0 {
			p.Description = newParagraph(descLines)
		} else {
			p.Description = Paragraph{Span: source.At(p.HeaderPos.Move(0, len(p.Header)))}
		}
		p.Span = source.Between(p.HeaderPos, p.Description.Span.End)

		params = append(params, p)
		i = j - 1
	}
	return params
}

// parseEntryHeader splits "name : type" on the first colon and tokenizes the
// type expression.
func parseEntryHeader(line Line, header string, indent int, typeOnly bool) Parameter {
	p := Parameter{
		Header:    header,
		HeaderPos: source.Position{Line: line.Pos.Line, Col: indent + 1},
	}
	makeTok := func(off int, val string) Token {
		start := source.Position{Line: line.Pos.Line, Col: indent + off + 1}
		return Token{Span: source.Between(start, start.Move(0, len(val))), Value: val}
	}

	nameRaw, typeRaw, hasColon := header, "", false
	typeBase := 0
	if c := strings.IndexByte(header, ':'); c >= 0 {
		hasColon = true
		nameRaw = header[:c]
		typeRaw = header[c+1:]
		typeBase = c + 1
	}

	name, nameOff := trimWithOffset(nameRaw)
	if hasColon || !typeOnly {
		if name != "" {
			tok := makeTok(nameOff, name)
			p.Name = &tok
		}
	} else if name != "" {
		// Bare type entry: "int" in a Returns section.
		typeRaw, typeBase = header, 0
	}

	for _, seg := range tokenizeTypes(typeRaw) {
		if seg.val == "optional" {
			p.OptionalCount++
			continue
		}
		p.Types = append(p.Types, makeTok(typeBase+seg.start, seg.val))
	}
	return p
}

func deindent(s string, indent int) string {
	if len(s) <= indent {
		return ""
	}
	return s[indent:]
}

func trimWithOffset(s string) (string, int) {
	trimmed := strings.TrimLeft(s, " \t")
	off := len(s) - len(trimmed)
	return strings.TrimRight(trimmed, " \t"), off
}

type typeSegment struct {
	val   string
	start int
}

// tokenizeTypes splits a type expression into its alternatives. Separators
// are top-level commas and the word "or"; parentheses and braces protect
// their content, so "{'red', 'blue'}" stays one token.
func tokenizeTypes(s string) []typeSegment {
	var segs []typeSegment
	start := -1
	parens, braces := 0, 0

	flush := func(end int) {
		for end > start && s[end-1] == ' ' {
			end--
		}
		if end > start {
			segs = append(segs, typeSegment{val: s[start:end], start: start})
		}
		start = -1
	}

	for i := 0; i < len(s); {
		ch := s[i]
		if start < 0 && ch != ' ' && ch != ',' {
			start = i
		}
		switch ch {
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case '{':
			braces++
		case '}':
			if braces > 0 {
				braces--
			}
		case ',':
			if parens == 0 && braces == 0 {
				if start >= 0 {
					flush(i)
				}
				i++
				continue
			}
		case ' ':
			if parens == 0 && braces == 0 && orWordAt(s, i+1) {
				if start >= 0 {
					flush(i)
				}
				i += 3 // skip " or"
				continue
			}
		}
		i++
	}
	if start >= 0 {
		flush(len(s))
	}
	return segs
}

// orWordAt reports whether the standalone word "or" starts at index j.
func orWordAt(s string, j int) bool {
	if j+2 > len(s) || s[j] != 'o' || s[j+1] != 'r' {
		return false
	}
	return j+2 == len(s) || s[j+2] == ' '
}
