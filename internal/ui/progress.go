package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"nx/internal/driver"
)

// fileState is where one file is in the load → lex → parse pipeline.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLexing
	stateParsing
	stateDone
	stateCached
	stateFailed
)

type stateInfo struct {
	label  string
	weight float64 // доля файла в общем прогрессе
	rank   int     // порядок строк: активные файлы и ошибки наверху
	style  lipgloss.Style
}

var states = [...]stateInfo{
	stateQueued:  {"queued", 0, 2, lipgloss.NewStyle().Foreground(lipgloss.Color("8"))},
	stateLexing:  {"lexing", 0.4, 0, lipgloss.NewStyle().Foreground(lipgloss.Color("6"))},
	stateParsing: {"parsing", 0.7, 0, lipgloss.NewStyle().Foreground(lipgloss.Color("6"))},
	stateDone:    {"done", 1, 3, lipgloss.NewStyle().Foreground(lipgloss.Color("2"))},
	stateCached:  {"cached", 1, 3, lipgloss.NewStyle().Foreground(lipgloss.Color("4"))},
	stateFailed:  {"error", 1, 1, lipgloss.NewStyle().Foreground(lipgloss.Color("1"))},
}

func (s fileState) String() string { return states[s].label }

func (s fileState) final() bool { return s >= stateDone }

// stateFor maps a driver event to the file state it announces; ok is false for
// events that do not change what the row shows.
func stateFor(ev driver.Event) (fileState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusError:
		return stateFailed, true
	case driver.StatusDone:
		if ev.Stage == driver.StageCache {
			return stateCached, true
		}
		return stateDone, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLex:
			return stateLexing, true
		case driver.StageParse:
			return stateParsing, true
		}
	}
	return 0, false
}

// maxRows limits the file list; large directories show a "+N more" line.
const maxRows = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type fileRow struct {
	path    string
	state   fileState
	elapsed time.Duration
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	counts  [len(states)]int
	width   int
	closed  bool
}

type eventMsg driver.Event

type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model showing per-file progress of a
// directory run. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	return newProgressModel(title, files, events)
}

func newProgressModel(title string, files []string, events <-chan driver.Event) *progressModel {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	m.bar.Width = m.width - 4
	for i, path := range files {
		m.rows[i] = fileRow{path: path}
		m.byPath[path] = i
	}
	m.counts[stateQueued] = len(files)
	return m
}

// Run renders the progress view to out until events is closed.
func Run(out io.Writer, title string, files []string, events <-chan driver.Event) error {
	_, err := tea.NewProgram(NewProgressModel(title, files, events),
		tea.WithOutput(out), tea.WithInput(nil)).Run()
	return err
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next ждёт следующее событие драйвера.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.closed {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply moves a file to the state announced by ev. Final states stick:
// a late event for a finished file is ignored.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	next, ok := stateFor(ev)
	row := &m.rows[i]
	if !ok || row.state.final() || next == row.state {
		return nil
	}
	m.counts[row.state]--
	m.counts[next]++
	row.state = next
	if next.final() {
		row.elapsed = ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	return m.counts[stateDone] + m.counts[stateCached] + m.counts[stateFailed]
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for s, n := range m.counts {
		sum += states[s].weight * float64(n)
	}
	return sum / float64(len(m.rows))
}

// visible returns the row indices to draw, most interesting first.
func (m *progressModel) visible() []int {
	idx := make([]int, len(m.rows))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return states[m.rows[a].state].rank - states[m.rows[b].state].rank
	})
	if len(idx) > maxRows {
		idx = idx[:maxRows]
	}
	return idx
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	lead := m.spinner.View()
	if m.closed {
		lead = "done:"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s %d/%d", lead, m.title, m.finished(), len(m.rows))))
	b.WriteString("\n\n")

	const labelWidth, timeWidth = 8, 10
	pathWidth := max(m.width-labelWidth-timeWidth-4, 16)
	shown := m.visible()
	for _, i := range shown {
		row := m.rows[i]
		st := states[row.state]
		elapsed := ""
		if row.state.final() && row.elapsed > 0 {
			elapsed = row.elapsed.Round(time.Microsecond).String()
		}
		fmt.Fprintf(&b, "  %s %-*s %s\n",
			st.style.Render(fmt.Sprintf("%*s", labelWidth, st.label)),
			pathWidth, truncate(row.path, pathWidth), dimStyle.Render(elapsed))
	}
	if hidden := len(m.rows) - len(shown); hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  +%d more", hidden)))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render(m.tally()))
	b.WriteByte('\n')
	return b.String()
}

// tally: "2 done · 1 cached · 1 error", only non-zero final states.
func (m *progressModel) tally() string {
	var parts []string
	for _, s := range []fileState{stateDone, stateCached, stateFailed} {
		if n := m.counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	return strings.Join(parts, " · ")
}

// truncate cuts value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
