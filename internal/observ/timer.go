package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase aggregates every run of one stage ("load", "lex", "parse").
type Phase struct {
	Name    string
	Runs    int
	Total   time.Duration
	Slowest time.Duration
	Subject string // файл самого долгого запуска
	Note    string // заметка последнего запуска
}

// Timer collects stage durations. Directory mode tracks the same stage for
// many files from worker goroutines, so runs are summed per stage.
// A nil *Timer is valid and records nothing.
type Timer struct {
	mu      sync.Mutex
	created time.Time
	order   []string
	phases  map[string]*Phase
}

func NewTimer() *Timer {
	return &Timer{created: time.Now(), phases: make(map[string]*Phase)}
}

// Track starts one run of stage for subject (a file path, or "") and returns
// the func that ends it.
func (t *Timer) Track(stage, subject string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	start := time.Now()
	return func(note string) { t.record(stage, subject, time.Since(start), note) }
}

func (t *Timer) record(stage, subject string, d time.Duration, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.phases[stage]
	if !ok {
		p = &Phase{Name: stage}
		t.phases[stage] = p
		t.order = append(t.order, stage)
	}
	p.Runs++
	p.Total += d
	p.Note = note
	if d >= p.Slowest {
		p.Slowest, p.Subject = d, subject
	}
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name      string  `json:"name"`
	Runs      int     `json:"runs"`
	TotalMS   float64 `json:"total_ms"`
	SlowestMS float64 `json:"slowest_ms"`
	Subject   string  `json:"slowest_file,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// Report lists phases in first-seen order. WallMS is the time since NewTimer;
// with parallel workers it is below the sum of the phases.
type Report struct {
	WallMS float64       `json:"wall_ms"`
	Phases []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Report{WallMS: millis(time.Since(t.created))}
	for _, name := range t.order {
		p := t.phases[name]
		r.Phases = append(r.Phases, PhaseReport{
			Name:      p.Name,
			Runs:      p.Runs,
			TotalMS:   millis(p.Total),
			SlowestMS: millis(p.Slowest),
			Subject:   p.Subject,
			Note:      p.Note,
		})
	}
	return r
}

// Summary renders the report for --timings.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-8s %4d× %9.2f ms", p.Name, p.Runs, p.TotalMS)
		switch {
		case p.Runs > 1 && p.Subject != "":
			fmt.Fprintf(&sb, "  slowest %.2f ms %s", p.SlowestMS, p.Subject)
		case p.Note != "":
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-8s       %9.2f ms\n", "wall", r.WallMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
