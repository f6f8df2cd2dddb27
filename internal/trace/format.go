package trace

import (
	"encoding/json"
	"strconv"
	"time"
)

// Format selects how events are rendered.
type Format uint8

const (
	FormatAuto   Format = iota // by output path: .ndjson/.jsonl → NDJSON, otherwise text
	FormatText                 // human-readable, one line per event
	FormatNDJSON               // one JSON object per line
)

// FormatForPath picks NDJSON for .ndjson and .jsonl files and text otherwise.
func FormatForPath(path string) Format {
	for _, ext := range []string{".ndjson", ".jsonl"} {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return FormatNDJSON
		}
	}
	return FormatText
}

// AppendEvent appends the rendered event, newline included, to dst.
func AppendEvent(dst []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(dst, ev)
	}
	return appendText(dst, ev)
}

var kindMarks = [...]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

// appendText: "15:04:05.000000 #12    pass   ← lex (detail) tokens=3 [41µs] error: ..."
func appendText(dst []byte, ev *Event) []byte {
	dst = ev.Time.AppendFormat(dst, "15:04:05.000000")
	dst = append(dst, " #"...)
	dst = appendPadded(dst, strconv.FormatUint(ev.Seq, 10), 5)
	dst = append(dst, ' ')
	dst = appendPadded(dst, ev.Scope.String(), 7)
	if ev.ParentID != 0 {
		dst = append(dst, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) {
		dst = append(dst, kindMarks[ev.Kind]...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	for _, a := range ev.Attrs {
		dst = append(dst, ' ')
		dst = append(dst, a.Key...)
		dst = append(dst, '=')
		dst = append(dst, a.Value...)
	}
	if ev.Kind == KindSpanEnd {
		dst = append(dst, " ["...)
		dst = append(dst, ev.Elapsed.Round(time.Microsecond).String()...)
		dst = append(dst, ']')
	}
	if ev.Err != "" {
		dst = append(dst, " error: "...)
		dst = append(dst, ev.Err...)
	}
	return append(dst, '\n')
}

func appendPadded(dst []byte, s string, width int) []byte {
	dst = append(dst, s...)
	for n := len(s); n < width; n++ {
		dst = append(dst, ' ')
	}
	return dst
}

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	SpanID    uint64            `json:"span_id,omitempty"`
	ParentID  uint64            `json:"parent_id,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	Err       string            `json:"error,omitempty"`
	ElapsedUS int64             `json:"elapsed_us,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

func appendNDJSON(dst []byte, ev *Event) []byte {
	j := jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Detail:    ev.Detail,
		Err:       ev.Err,
		ElapsedUS: ev.Elapsed.Microseconds(),
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		// строки и числа всегда сериализуются
		return dst
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}
