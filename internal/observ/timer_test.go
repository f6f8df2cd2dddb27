package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Track("load", "")("1 bytes")
	tm.Track("lex", "a.nx")("12 tokens")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if p := report.Phases[1]; p.Name != "lex" || p.Runs != 1 || p.Note != "12 tokens" || p.Subject != "a.nx" {
		t.Errorf("unexpected lex phase: %+v", p)
	}
	summary := tm.Summary()
	if !strings.Contains(summary, "// 12 tokens") || !strings.Contains(summary, "wall") {
		t.Errorf("unexpected summary:\n%s", summary)
	}
}

func TestTimerAggregatesConcurrentRuns(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("parse", "f.nx")("")
		}()
	}
	wg.Wait()

	report := tm.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("runs of one stage must share a phase, got %d phases", len(report.Phases))
	}
	if p := report.Phases[0]; p.Runs != 16 || p.SlowestMS > p.TotalMS {
		t.Fatalf("unexpected aggregate: %+v", p)
	}
	if !strings.Contains(tm.Summary(), "slowest") {
		t.Errorf("summary must name the slowest file:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("lex", "x")("")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}
