package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity of the event; coarser scopes have lower values.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command, one driver call
	ScopePass                    // lex, parse
	ScopeFile                    // one file in directory mode
	ScopeNode                    // parser states
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is one key/value pair attached to a span end event.
type Attr struct {
	Key   string
	Value string
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивает трейсер при записи
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points
	ParentID uint64 // 0 at the root
	Name     string // "lex", "parse", a file path in directory mode
	Detail   string
	Err      string        // failure message; passes LevelError
	Elapsed  time.Duration // only on KindSpanEnd
	Attrs    []Attr        // in the order they were set
}

// Attr returns the value of the named attribute, or "" if it is not set.
func (ev *Event) Attr(key string) string {
	for _, a := range ev.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}
