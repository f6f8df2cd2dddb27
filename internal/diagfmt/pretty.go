package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nx/internal/diag"
	"nx/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.File)
		path := formatPath(f, opts.PathMode, fs.BaseDir())

		var start source.LineCol
		if f != nil {
			start, _ = f.Resolve(d.Primary)
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		); err != nil {
			return err
		}
		if f != nil {
			if err := writeSnippet(w, f, d.Primary, opts.Context, pal); err != nil {
				return err
			}
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.File)
			var pos source.LineCol
			if nf != nil {
				pos, _ = nf.Resolve(n.Span)
			}
			if _, err := fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"), formatPath(nf, opts.PathMode, fs.BaseDir()), pos.Line, pos.Col, n.Msg,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSnippet печатает строку с ошибкой (и context строк перед ней)
// и подчёркивание под первой строкой span.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int8, pal palette) error {
	start, end := f.Resolve(sp)
	if start.Line == 0 {
		return nil
	}
	first := start.Line
	if context > 0 {
		first = max(1, start.Line-uint32(context)) //nolint:gosec // context > 0
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		if _, err := fmt.Fprintf(w, "%s %s\n",
			pal.gutter.Sprintf("%*d |", gutterWidth, ln), f.GetLine(ln),
		); err != nil {
			return err
		}
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col-1), len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col-1), len(line))
	}
	underline := "^"
	if width := runewidth.StringWidth(line[col:max(col, endCol)]); width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	_, err := fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""), padding(line[:col]), pal.caret.Sprint(underline),
	)
	return err
}

// padding returns whitespace with the display width of prefix; tabs are kept
// so the caret lines up with tab-indented code.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
