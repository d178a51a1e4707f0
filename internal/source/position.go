package source

import "fmt"

// Position is a 1-based line:column location in a source file.
type Position struct {
	Line int
	Col  int
}

// Move shifts the position by a relative line and column delta.
func (p Position) Move(dLine, dCol int) Position {
	return Position{Line: p.Line + dLine, Col: p.Col + dCol}
}

// WithLine returns the position with an absolute line override.
func (p Position) WithLine(line int) Position {
	return Position{Line: line, Col: p.Col}
}

// WithCol returns the position with an absolute column override.
func (p Position) WithCol(col int) Position {
	return Position{Line: p.Line, Col: col}
}

// Normalize rebases the position against a reference position. Only the
// line is subtracted; columns already count from the start of their own
// physical line.
func (p Position) Normalize(ref Position) Position {
	return Position{Line: p.Line - ref.Line, Col: p.Col}
}

// Before reports whether p is strictly before other in reading order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is a half-open region between two positions. End == Start is a
// valid zero-width anchor ("insert here" diagnostics).
type Span struct {
	Start Position
	End   Position
}

// At returns a zero-width span anchored at pos.
func At(pos Position) Span {
	return Span{Start: pos, End: pos}
}

// Between returns the span from start to end.
func Between(start, end Position) Span {
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}
	if s.End.Before(other.End) {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
