package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) into a source buffer.
// Offsets are bytes, not runes.
type Span struct {
	Start uint32 `json:"start" msgpack:"s"` // в байтах включительно
	End   uint32 `json:"end" msgpack:"e"`   // в байтах не включительно
}

// NewSpan builds a span from int offsets. It panics if an offset does not fit
// into uint32 or if start > end; both indicate a bug in the caller.
func NewSpan(start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	if s > e {
		panic(fmt.Sprintf("span start %d is after end %d", s, e))
	}
	return Span{Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Slice returns the part of src covered by the span. Out-of-range spans are
// clamped to the buffer.
func (s Span) Slice(src string) string {
	n := uint32(len(src)) // #nosec G115 -- clamped below
	start, end := min(s.Start, n), min(s.End, n)
	return src[start:end]
}
