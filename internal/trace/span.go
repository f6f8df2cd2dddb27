package trace

import (
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }

// Span is one traced operation, from Begin to End.
// A Span from a disabled tracer is inert: every method is a no-op and ID is 0.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
	err     string
}

var inert = &Span{}

// Begin starts a span under parent (0 for a root span) and emits its begin event.
// The end event is always emitted when the tracer is enabled, even if the level
// hides the begin event: a failed span must reach LevelError output.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return inert
	}
	s := &Span{
		tracer:  t,
		id:      nextSpanID(),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	if t.Level().ShouldEmit(scope) {
		t.Emit(s.event(KindSpanBegin, s.started, ""))
	}
	return s
}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Elapsed = now.Sub(s.started)
	ev.Attrs = s.attrs
	ev.Err = s.err
	s.tracer.Emit(ev)
	return ev.Elapsed
}

// Set attaches key=value to the end event.
func (s *Span) Set(key, value string) *Span {
	if s.live() {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// SetInt is Set for counters.
func (s *Span) SetInt(key string, value int) *Span {
	if s.live() {
		s.attrs = append(s.attrs, Attr{Key: key, Value: strconv.Itoa(value)})
	}
	return s
}

// Fail marks the span as failed.
func (s *Span) Fail(err error) *Span {
	if s.live() && err != nil {
		s.err = err.Error()
	}
	return s
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
