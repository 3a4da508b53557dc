package source

import (
	"testing"
)

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.sl", []byte("abc\ndef\nghi"))

	start, end := fs.Resolve(Span{File: id, Start: 4, End: 7})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %d:%d, want 2:1", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Fatalf("end = %d:%d, want 2:4", end.Line, end.Col)
	}
}

func TestFileSetResolveNewlineOffset(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.sl", []byte("abc\ndef\nghi"))

	// An offset sitting on a newline belongs to the line it terminates.
	start, end := fs.Resolve(Span{File: id, Start: 3, End: 7})
	if start.Line != 1 || start.Col != 4 {
		t.Fatalf("start = %d:%d, want 1:4", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Fatalf("end = %d:%d, want 2:4", end.Line, end.Col)
	}
}

func TestFileSetResolveFirstLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.sl", []byte("abc\ndef"))

	start, _ := fs.Resolve(Span{File: id, Start: 1, End: 2})
	if start.Line != 1 || start.Col != 2 {
		t.Fatalf("start = %d:%d, want 1:2", start.Line, start.Col)
	}
}

func TestFileSetNormalizesCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.sl", []byte("a\r\nb"))

	f := fs.Get(id)
	if string(f.Content) != "a\nb" {
		t.Fatalf("content = %q, want %q", f.Content, "a\nb")
	}
	if f.Line(2) != "b" {
		t.Fatalf("line 2 = %q, want %q", f.Line(2), "b")
	}
}

func TestFileSetPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("dir/mem.sl", []byte("abc\ndef"))

	got := fs.Position(Span{File: id, Start: 5, End: 6})
	if got != "dir/mem.sl:2:2" {
		t.Fatalf("position = %q", got)
	}
}
