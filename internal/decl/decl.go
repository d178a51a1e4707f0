// Package decl defines the declaration values consumed by the validator.
// Declarations are produced by a source-language collaborator (internal/pyscan
// for Python files); the docstring core never inspects host-language syntax
// beyond this value shape.
package decl

import (
	"strings"

	"numdoc/internal/source"
)

// Kind is the closed set of declaration kinds.
type Kind uint8

const (
	Module Kind = iota
	Class
	Function
	Method
	Constant
)

func (k Kind) String() string {
	switch k {
	case Module:
		return "module"
	case Class:
		return "class"
	case Function:
		return "function"
	case Method:
		return "method"
	case Constant:
		return "constant"
	}
	return "unknown"
}

// Name is a positioned identifier.
type Name struct {
	Value string
	Span  source.Span
}

// Parameter is one declared parameter of a callable.
type Parameter struct {
	Name       string
	Span       source.Span
	Default    string // literal default text, empty when absent
	Annotation string // literal annotation text, empty when absent
	StarCount  int    // 0 plain, 1 *args, 2 **kwargs
}

// IsArgs reports whether the parameter is a *args catch-all.
func (p Parameter) IsArgs() bool { return p.StarCount == 1 }

// IsKwargs reports whether the parameter is a **kwargs catch-all.
func (p Parameter) IsKwargs() bool { return p.StarCount == 2 }

// RawDoc is the raw docstring attached to a declaration: the text between
// the delimiters, the span of the whole string token, the base indentation
// width, and the width of the opening delimiter (3, or 4 for r-strings).
type RawDoc struct {
	Span    source.Span
	Indent  int
	OpenLen int
	Text    string
}

// Declaration is one checked source declaration. Fields that do not apply to
// a kind stay at their zero value: Name is nil for Module, Params is empty
// for Module and Constant, the body counts are zero for non-callables.
type Declaration struct {
	Kind    Kind
	Name    *Name
	Span    source.Span
	Params  []Parameter
	Returns int
	Yields  int
	Raises  int
	Noqa    []string
	Doc     *RawDoc
}

// HasDocstring reports whether a docstring is attached.
func (d *Declaration) HasDocstring() bool { return d.Doc != nil }

// Callable reports whether the declaration has a body that can return or yield.
func (d *Declaration) Callable() bool {
	return d.Kind == Function || d.Kind == Method
}

// TakesParameters reports whether the Parameters section applies.
func (d *Declaration) TakesParameters() bool {
	return d.Kind == Function || d.Kind == Method || d.Kind == Class
}

// Magic reports whether the declaration name is a recognized dunder name.
func (d *Declaration) Magic() bool {
	return d.Name != nil && magicNames[d.Name.Value]
}

// Private reports whether the name is underscore-prefixed and not magic.
func (d *Declaration) Private() bool {
	return d.Name != nil && strings.HasPrefix(d.Name.Value, "_") && !d.Magic()
}

// Suppressed reports whether a diagnostic code or check identifier is
// silenced by an inline noqa comment on this declaration.
func (d *Declaration) Suppressed(code string) bool {
	for _, c := range d.Noqa {
		if c == code {
			return true
		}
	}
	return false
}
