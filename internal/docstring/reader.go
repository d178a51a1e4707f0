package docstring

import "strings"

func trimSpace(s string) string { return strings.TrimSpace(s) }

// Reader walks a slice of positioned lines with single-line lookahead
// helpers. It never allocates new line content, so joining everything it
// reads reproduces the input verbatim.
type Reader struct {
	lines []Line
	cur   int
}

// NewReader returns a reader positioned at the first line.
func NewReader(lines []Line) *Reader {
	return &Reader{lines: lines}
}

// EOF reports whether all lines have been consumed.
func (r *Reader) EOF() bool {
	return r.cur >= len(r.lines)
}

// Peek returns the line at the given offset from the cursor without
// consuming anything. Offsets may be negative.
func (r *Reader) Peek(off int) (Line, bool) {
	i := r.cur + off
	if i < 0 || i >= len(r.lines) {
		return Line{}, false
	}
	return r.lines[i], true
}

// Read consumes and returns the current line.
func (r *Reader) Read() (Line, bool) {
	if r.EOF() {
		return Line{}, false
	}
	l := r.lines[r.cur]
	r.cur++
	return l, true
}

// ReadWhile consumes lines as long as pred holds.
func (r *Reader) ReadWhile(pred func(Line) bool) []Line {
	start := r.cur
	for !r.EOF() && pred(r.lines[r.cur]) {
		r.cur++
	}
	return r.lines[start:r.cur]
}

// SkipBlank consumes any run of blank lines.
func (r *Reader) SkipBlank() {
	r.ReadWhile(Line.Blank)
}

// ReadUntilBlank consumes lines up to but not including the next blank line.
func (r *Reader) ReadUntilBlank() []Line {
	return r.ReadWhile(func(l Line) bool { return !l.Blank() })
}

// ReadToEOF consumes and returns everything left.
func (r *Reader) ReadToEOF() []Line {
	start := r.cur
	r.cur = len(r.lines)
	return r.lines[start:]
}

// ReadUntilNextSectionBoundary consumes lines up to but not including the
// next section boundary after the cursor advances at least one line.
func (r *Reader) ReadUntilNextSectionBoundary() []Line {
	start := r.cur
	if !r.EOF() {
		r.cur++
	}
	for !r.EOF() && !r.IsAtSectionBoundary() {
		r.cur++
	}
	return r.lines[start:r.cur]
}

// IsAtSectionBoundary reports whether the current line opens a section:
// either an ".. index::" directive, or a non-blank line whose next non-blank
// line consists solely of '-' or '=' characters. Underline length is not
// checked here; a length mismatch is still a boundary and is reported later.
func (r *Reader) IsAtSectionBoundary() bool {
	cur, ok := r.Peek(0)
	if !ok {
		return false
	}
	head := trimSpace(cur.Text)
	if head == "" {
		return false
	}
	if strings.HasPrefix(head, ".. index::") {
		return true
	}
	for off := 1; ; off++ {
		next, ok := r.Peek(off)
		if !ok {
			return false
		}
		under := trimSpace(next.Text)
		if under == "" {
			continue
		}
		return isUnderline(under)
	}
}

// isUnderline reports whether s is a non-empty run of a single underline
// character, '-' or '='.
func isUnderline(s string) bool {
	if s == "" {
		return false
	}
	ch := s[0]
	if ch != '-' && ch != '=' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != ch {
			return false
		}
	}
	return true
}
