package source

import (
	"testing"

	"github.com/creachadair/mds/mtest"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint", Span{Start: 2, End: 4}, Span{Start: 10, End: 12}, Span{Start: 2, End: 12}},
		{"nested", Span{Start: 0, End: 20}, Span{Start: 5, End: 6}, Span{Start: 0, End: 20}},
		{"reversed", Span{Start: 10, End: 12}, Span{Start: 2, End: 4}, Span{Start: 2, End: 12}},
		{"empty", Span{Start: 3, End: 3}, Span{Start: 3, End: 3}, Span{Start: 3, End: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_LenEmptyContains(t *testing.T) {
	sp := Span{Start: 4, End: 9}
	if sp.Len() != 5 {
		t.Errorf("Len() = %d, want 5", sp.Len())
	}
	if sp.Empty() {
		t.Error("span 4-9 must not be empty")
	}
	if !sp.Contains(4) || sp.Contains(9) {
		t.Error("span must be half-open: contains start, excludes end")
	}
	if !(Span{Start: 7, End: 7}).Empty() {
		t.Error("zero-length span must be empty")
	}
	if got := sp.String(); got != "4-9" {
		t.Errorf("String() = %q, want %q", got, "4-9")
	}
}

func TestSpan_Slice(t *testing.T) {
	src := "fn main() { }"
	if got := (Span{Start: 3, End: 7}).Slice(src); got != "main" {
		t.Errorf("Slice() = %q, want %q", got, "main")
	}
	// выход за границы обрезается
	if got := (Span{Start: 11, End: 100}).Slice(src); got != " }" {
		t.Errorf("Slice() = %q, want %q", got, " }")
	}
}

func TestNewSpan(t *testing.T) {
	if got := NewSpan(1, 5); got != (Span{Start: 1, End: 5}) {
		t.Errorf("NewSpan(1, 5) = %+v", got)
	}
	mtest.MustPanic(t, func() { NewSpan(5, 1) })
	mtest.MustPanic(t, func() { NewSpan(-1, 1) })
}
