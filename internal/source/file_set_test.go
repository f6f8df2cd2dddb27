package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.nx", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("test.nx", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	// старая версия всё ещё доступна
	if got := fs.Get(id1).Content; got != "hello world" {
		t.Errorf("first file content = %q", got)
	}
	if got := fs.Get(id2).Content; got != "hello universe" {
		t.Errorf("second file content = %q", got)
	}
	if fs.Get(42) != nil {
		t.Error("Get with unknown id must return nil")
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.nx", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.nx", []byte("fn a\n  fn b\n"))

	tests := []struct {
		span       Span
		start, end LineCol
	}{
		{Span{Start: 0, End: 2}, LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 3}},
		{Span{Start: 7, End: 9}, LineCol{Line: 2, Col: 3}, LineCol{Line: 2, Col: 5}},
		// сам перевод строки принадлежит своей строке
		{Span{Start: 4, End: 5}, LineCol{Line: 1, Col: 5}, LineCol{Line: 2, Col: 1}},
	}
	for _, tt := range tests {
		start, end := fs.Resolve(id, tt.span)
		if start != tt.start || end != tt.end {
			t.Errorf("Resolve(%s) = %+v..%+v, want %+v..%+v", tt.span, start, end, tt.start, tt.end)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("l.nx", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.nx")
	raw := []byte{0xEF, 0xBB, 0xBF, 'f', 'n', '\r', '\n', 'x'}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if file.Content != "fn\nx" {
		t.Errorf("Content = %q, want %q", file.Content, "fn\nx")
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %08b", file.Flags)
	}
	if file.Flags&FileVirtual != 0 {
		t.Error("loaded file must not be virtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.nx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromNormalizes(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.LoadFrom("<stdin>", strings.NewReader("\ufefffn a\r\nfn b\r\n"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	f := fs.Get(id)
	if f.Content != "fn a\nfn b\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if f.Path != "<stdin>" {
		t.Errorf("path = %q", f.Path)
	}
}

func TestFormatPathKeepsPseudoNames(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("<stdin>", []byte("fn a")))
	for _, mode := range []string{"absolute", "relative", "basename", "auto"} {
		if got := f.FormatPath(mode, t.TempDir()); got != "<stdin>" {
			t.Errorf("FormatPath(%q) = %q", mode, got)
		}
	}
}
