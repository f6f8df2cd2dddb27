package diag

import (
	"cmp"
	"slices"
)

// Bag collects the diagnostics of one run. A limited bag drops, and counts,
// whatever arrives after it is full.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 means unbounded.
func NewBag(limit int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max(limit, 0), 64)),
		limit: limit,
	}
}

// Add reports false when the bag is full and d was dropped. An error is never
// dropped: it takes the place of the newest less severe entry, or goes over
// the limit when the bag holds errors only.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		if d.Severity < SevError {
			b.dropped++
			return false
		}
		if i := b.lastBelow(SevError); i >= 0 {
			b.items = append(b.items[:i], b.items[i+1:]...)
			b.dropped++
		}
	}
	b.items = append(b.items, d)
	return true
}

// lastBelow: индекс последней диагностики ниже sev, или -1.
func (b *Bag) lastBelow(sev Severity) int {
	for i := len(b.items) - 1; i >= 0; i-- {
		if b.items[i].Severity < sev {
			return i
		}
	}
	return -1
}

func (b *Bag) Cap() int { return b.limit }

func (b *Bag) Len() int { return len(b.items) }

// Dropped: сколько диагностик не влезло в лимит.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) count(atLeast Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= atLeast {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool { return b.count(SevError) > 0 }

// HasWarnings is true for warnings and anything more severe.
func (b *Bag) HasWarnings() bool { return b.count(SevWarning) > 0 }

// Items exposes the bag's own slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends everything from other. The limit grows to fit: per-file bags
// were limited already.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
	if b.limit > 0 {
		b.limit = max(b.limit, len(b.items))
	}
}

// compareDiag orders by file and position; at the same span the more severe
// diagnostic goes first, then the lower code.
func compareDiag(x, y Diagnostic) int {
	return cmp.Or(
		cmp.Compare(x.File, y.File),
		cmp.Compare(x.Primary.Start, y.Primary.Start),
		cmp.Compare(x.Primary.End, y.Primary.End),
		cmp.Compare(y.Severity, x.Severity),
		cmp.Compare(x.Code, y.Code),
	)
}

func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, compareDiag)
}

// Dedup keeps the first diagnostic for each code, file and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		file uint32
		from uint32
		to   uint32
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, uint32(d.File), d.Primary.Start, d.Primary.End}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
