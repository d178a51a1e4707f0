package pyscan

import (
	"strings"

	"numdoc/internal/decl"
	"numdoc/internal/source"
)

// posChar is one signature byte with its file position.
type posChar struct {
	ch   byte
	line int
	col  int
}

// parseSignature reads a def's parameter list beginning at the opening
// parenthesis (byte index parenIdx on 0-based line i, which may continue
// over further lines) and returns the parameters plus the 0-based index of
// the line holding the closing parenthesis.
func (s *scanner) parseSignature(i, parenIdx int) ([]decl.Parameter, int) {
	var chars []posChar
	depth := 1
	start := parenIdx + 1

	for lineIdx := i; lineIdx < len(s.lines); lineIdx++ {
		text := s.lines[lineIdx]
		k := 0
		if lineIdx == i {
			k = start
		}
		var inStr byte
		for ; k < len(text); k++ {
			c := text[k]
			if inStr != 0 {
				if c == '\\' {
					k++
					continue
				}
				if c == inStr {
					inStr = 0
				}
				chars = append(chars, posChar{c, lineIdx + 1, k + 1})
				continue
			}
			switch c {
			case '\'', '"':
				inStr = c
			case '#':
				k = len(text)
				continue
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
				if depth == 0 {
					return parseParams(chars), lineIdx
				}
			}
			chars = append(chars, posChar{c, lineIdx + 1, k + 1})
		}
	}
	// Unterminated signature; salvage what was collected.
	return parseParams(chars), len(s.lines) - 1
}

// parseParams splits the collected signature characters on top-level commas
// and extracts name, star prefix, annotation, and default from each segment.
func parseParams(chars []posChar) []decl.Parameter {
	var params []decl.Parameter
	depth := 0
	var inStr byte
	seg := make([]posChar, 0, 16)

	flush := func() {
		if p, ok := parseParam(seg); ok {
			params = append(params, p)
		}
		seg = seg[:0]
	}
	for _, c := range chars {
		if inStr != 0 {
			if c.ch == inStr {
				inStr = 0
			}
			seg = append(seg, c)
			continue
		}
		switch c.ch {
		case '\'', '"':
			inStr = c.ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				flush()
				continue
			}
		}
		seg = append(seg, c)
	}
	flush()
	return params
}

func parseParam(seg []posChar) (decl.Parameter, bool) {
	k := 0
	for k < len(seg) && (seg[k].ch == ' ' || seg[k].ch == '\t') {
		k++
	}
	stars := 0
	for k < len(seg) && seg[k].ch == '*' {
		stars++
		k++
	}
	nameStart := k
	for k < len(seg) && isIdentByte(seg[k].ch) {
		k++
	}
	if k == nameStart {
		// Bare "*", "/", or an empty trailing segment.
		return decl.Parameter{}, false
	}

	name := segText(seg[nameStart:k])
	startPos := source.Position{Line: seg[nameStart].line, Col: seg[nameStart].col}
	p := decl.Parameter{
		Name:      name,
		StarCount: stars,
		Span: source.Span{
			Start: startPos,
			End:   startPos.Move(0, len(name)),
		},
	}

	rest := seg[k:]
	if eq := topLevelIndex(rest, '='); eq >= 0 {
		p.Default = strings.TrimSpace(segText(rest[eq+1:]))
		rest = rest[:eq]
	}
	if colon := topLevelIndex(rest, ':'); colon >= 0 {
		p.Annotation = strings.TrimSpace(segText(rest[colon+1:]))
	}
	return p, true
}

func topLevelIndex(seg []posChar, target byte) int {
	depth := 0
	var inStr byte
	for i, c := range seg {
		if inStr != 0 {
			if c.ch == inStr {
				inStr = 0
			}
			continue
		}
		switch c.ch {
		case '\'', '"':
			inStr = c.ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case target:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func segText(seg []posChar) string {
	var b strings.Builder
	b.Grow(len(seg))
	for _, c := range seg {
		b.WriteByte(c.ch)
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
