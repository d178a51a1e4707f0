package source

import (
	"testing"
)

func TestFileSet_AddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.py", []byte("line1\nline2\n"))
	f := fs.Get(id)

	if f.Path != "test.py" {
		t.Errorf("Path = %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if f.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", f.LineCount())
	}
	if f.GetLine(1) != "line1" || f.GetLine(2) != "line2" {
		t.Errorf("GetLine() = %q, %q", f.GetLine(1), f.GetLine(2))
	}
	if f.GetLine(0) != "" || f.GetLine(3) != "" {
		t.Error("out-of-range GetLine should return empty string")
	}
}

func TestFileSet_NormalizesCRLFAndBOM(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.py", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Errorf("Content = %q", f.Content)
	}
	if f.GetLine(1) != "a" || f.GetLine(2) != "b" {
		t.Errorf("lines = %q, %q", f.GetLine(1), f.GetLine(2))
	}
}

func TestFileSet_GetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.py", []byte("x"))
	id2 := fs.AddVirtual("a.py", []byte("y"))

	f, ok := fs.GetByPath("./a.py")
	if !ok {
		t.Fatal("GetByPath failed")
	}
	if f.ID != id2 {
		t.Errorf("index should point at the latest version, got %d", f.ID)
	}
}

func TestSplitLines_NoTrailingNewline(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.py", []byte("only")))
	if f.LineCount() != 1 || f.GetLine(1) != "only" {
		t.Errorf("lines = %v", f.Lines)
	}
}
