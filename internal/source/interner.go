package source

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// StringID is a handle to an interned lexeme.
type StringID uint32

const NoStringID StringID = 0

// Interner maps lexemes to dense IDs. It clones what it stores, so the
// source buffer may be dropped while the handles live on.
// ID 0 is reserved for "".
type Interner struct {
	strs []string
	ids  map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		strs: []string{""},
		ids:  map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, assigning the next free one on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	next, err := safecast.Conv[uint32](len(in.strs))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	s = strings.Clone(s)
	in.strs = append(in.strs, s)
	in.ids[s] = StringID(next)
	return StringID(next)
}

func (in *Interner) Has(id StringID) bool {
	return int(id) < len(in.strs)
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.strs[id], true
}

// Len counts the reserved "" too.
func (in *Interner) Len() int {
	return len(in.strs)
}

// Snapshot returns the table indexed by StringID.
func (in *Interner) Snapshot() []string {
	return slices.Clone(in.strs)
}

// NewInternerFrom rebuilds an interner from a Snapshot. The table must start
// with "" and hold no repeats, otherwise the IDs would not round-trip.
func NewInternerFrom(snapshot []string) (*Interner, bool) {
	if len(snapshot) == 0 || snapshot[0] != "" {
		return nil, false
	}
	in := NewInterner()
	for i, s := range snapshot[1:] {
		if in.Intern(s) != StringID(i+1) { // #nosec G115 -- i < len(snapshot), а Intern уже проверил переполнение
			return nil, false
		}
	}
	return in, true
}
