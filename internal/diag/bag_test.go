package diag

import (
	"testing"

	"nx/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		ok := bag.Add(New(SevWarning, SynUnexpectedTopLevel, 0, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("Len() = %d, Dropped() = %d, want 2 and 1", bag.Len(), bag.Dropped())
	}

	unbounded := NewBag(0)
	for range 100 {
		unbounded.Add(NewError(LexEmptyInput, 0, source.Span{}, "empty"))
	}
	if unbounded.Len() != 100 {
		t.Fatalf("unbounded bag kept %d items", unbounded.Len())
	}
}

func TestBagKeepsErrorsOverLimit(t *testing.T) {
	bag := NewBag(2)
	bag.Add(New(SevWarning, SynUnexpectedTopLevel, 0, source.Span{Start: 0, End: 3}, "first"))
	bag.Add(New(SevWarning, SynUnexpectedTopLevel, 0, source.Span{Start: 4, End: 6}, "second"))
	if !bag.Add(NewError(SynExpectIdentifier, 0, source.Span{Start: 7, End: 8}, "expected identifier")) {
		t.Fatal("an error must not be dropped")
	}
	items := bag.Items()
	if len(items) != 2 || bag.Dropped() != 1 || !bag.HasErrors() {
		t.Fatalf("len=%d dropped=%d errors=%v", len(items), bag.Dropped(), bag.HasErrors())
	}
	if items[0].Message != "first" || items[1].Code != SynExpectIdentifier {
		t.Fatalf("the newest warning must give way: %+v", items)
	}

	// одни ошибки: лимит превышается
	full := NewBag(1)
	full.Add(NewError(LexEmptyInput, 0, source.Span{}, "a"))
	full.Add(NewError(SynEmptyInput, 0, source.Span{}, "b"))
	if full.Len() != 2 || full.Dropped() != 0 {
		t.Fatalf("errors-only bag: len=%d dropped=%d", full.Len(), full.Dropped())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, SynUnexpectedTopLevel, 1, source.Span{Start: 0, End: 1}, "w"))
	bag.Add(NewError(SynExpectIdentifier, 0, source.Span{Start: 5, End: 6}, "b"))
	bag.Add(NewError(SynExpectIdentifier, 0, source.Span{Start: 5, End: 6}, "b"))
	bag.Add(NewError(LexUnclassifiableWord, 0, source.Span{Start: 1, End: 2}, "a"))

	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	if items[0].Code != LexUnclassifiableWord || items[1].Code != SynExpectIdentifier || items[2].File != 1 {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("bag must report errors and warnings")
	}
}

func TestBagMerge(t *testing.T) {
	a, b := NewBag(1), NewBag(1)
	a.Add(NewError(LexEmptyInput, 0, source.Span{}, "a"))
	b.Add(New(SevWarning, SynUnexpectedTopLevel, 1, source.Span{}, "b"))
	b.Add(New(SevWarning, SynUnexpectedTopLevel, 1, source.Span{}, "over the limit"))
	a.Merge(b)
	a.Merge(nil)
	if a.Len() != 2 || a.Cap() != 2 || a.Dropped() != 1 {
		t.Fatalf("Merge: len=%d cap=%d dropped=%d", a.Len(), a.Cap(), a.Dropped())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, SynExpectIdentifier, 0, source.Span{Start: 3, End: 4}, "expected identifier").
		WithNote(source.Span{Start: 0, End: 2}, "function starts here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Emit must report once, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "function starts here" {
		t.Fatalf("note lost: %+v", d.Notes)
	}
	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(source.Span{}, "x").Emit()
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexEmptyInput:       "LEX1001",
		SynExpectIdentifier: "SYN2002",
		IOLoadFileError:     "IO4001",
		ProjManifestError:   "PRJ5001",
		UnknownCode:         "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown code must fall back to the generic title")
	}
}
