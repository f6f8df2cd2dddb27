package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nx/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("b.nx", []byte("fn\n  fn 1"))
	b := fs.AddVirtual("a.nx", []byte("%"))

	diags := []Diagnostic{
		NewError(SynExpectIdentifier, a, source.Span{Start: 8, End: 9}, "expected identifier, got IntVal").
			WithNote(source.Span{Start: 5, End: 7}, "function declared here"),
		NewError(LexUnclassifiableWord, b, source.Span{Start: 0, End: 1}, `unclassifiable word "%"`),
	}

	want := "a.nx:1:1: ERROR LEX1002: unclassifiable word \"%\"\n" +
		"b.nx:2:6: ERROR SYN2002: expected identifier, got IntVal\n" +
		"  b.nx:2:3: note: function declared here\n"
	if diff := cmp.Diff(want, FormatShort(diags, fs, true)); diff != "" {
		t.Errorf("FormatShort (-want, +got):\n%s", diff)
	}
	if got := FormatShort(nil, fs, true); got != "" {
		t.Errorf("empty input must render nothing, got %q", got)
	}
}
