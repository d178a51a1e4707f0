package decl

import (
	"testing"

	"numdoc/internal/source"
)

func named(v string) *Name {
	return &Name{Value: v, Span: source.At(source.Position{Line: 1, Col: 1})}
}

func TestDeclaration_PrivateAndMagic(t *testing.T) {
	tests := []struct {
		name    string
		decl    Declaration
		private bool
		magic   bool
	}{
		{
			name:    "public function",
			decl:    Declaration{Kind: Function, Name: named("run")},
			private: false,
			magic:   false,
		},
		{
			name:    "underscore prefix is private",
			decl:    Declaration{Kind: Function, Name: named("_helper")},
			private: true,
			magic:   false,
		},
		{
			name:    "dunder init is magic not private",
			decl:    Declaration{Kind: Method, Name: named("__init__")},
			private: false,
			magic:   true,
		},
		{
			name:    "unknown dunder is private",
			decl:    Declaration{Kind: Method, Name: named("__frobnicate__")},
			private: true,
			magic:   false,
		},
		{
			name:    "module has no name",
			decl:    Declaration{Kind: Module},
			private: false,
			magic:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.decl.Private(); got != tt.private {
				t.Errorf("Private() = %v, want %v", got, tt.private)
			}
			if got := tt.decl.Magic(); got != tt.magic {
				t.Errorf("Magic() = %v, want %v", got, tt.magic)
			}
		})
	}
}

func TestDeclaration_Suppressed(t *testing.T) {
	d := Declaration{Kind: Function, Name: named("f"), Noqa: []string{"PR01", "GL08"}}
	if !d.Suppressed("PR01") || !d.Suppressed("GL08") {
		t.Error("expected listed codes to be suppressed")
	}
	if d.Suppressed("PR02") {
		t.Error("PR02 should not be suppressed")
	}
}

func TestParameter_Stars(t *testing.T) {
	if !(Parameter{StarCount: 1}).IsArgs() {
		t.Error("StarCount 1 should be *args")
	}
	if !(Parameter{StarCount: 2}).IsKwargs() {
		t.Error("StarCount 2 should be **kwargs")
	}
	if (Parameter{}).IsArgs() {
		t.Error("plain parameter is not *args")
	}
}
