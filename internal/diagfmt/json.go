package diagfmt

import (
	"encoding/json"
	"io"

	"nx/internal/diag"
	"nx/internal/source"
)

// PositionJSON is a 1-based line/column pair.
type PositionJSON struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// RangeJSON locates a span: byte offsets always, positions with IncludePositions.
type RangeJSON struct {
	StartByte uint32        `json:"start_byte"`
	EndByte   uint32        `json:"end_byte"`
	Start     *PositionJSON `json:"start,omitempty"`
	End       *PositionJSON `json:"end,omitempty"`
}

type NoteJSON struct {
	Message string    `json:"message"`
	File    string    `json:"file,omitempty"` // только если отличается от файла диагностики
	Range   RangeJSON `json:"range"`
}

type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Range    RangeJSON  `json:"range"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// FileDiagnosticsJSON groups the diagnostics of one source file.
type FileDiagnosticsJSON struct {
	Path        string           `json:"path"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// DiagnosticsOutput is the document `--diag-format json` prints.
// Files appear in order of their first diagnostic.
type DiagnosticsOutput struct {
	Files     []FileDiagnosticsJSON `json:"files"`
	Errors    int                   `json:"errors"`
	Warnings  int                   `json:"warnings"`
	Count     int                   `json:"count"`
	Truncated bool                  `json:"truncated,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) rangeOf(f *source.File, sp source.Span) RangeJSON {
	r := RangeJSON{StartByte: sp.Start, EndByte: sp.End}
	if b.opts.IncludePositions && f != nil {
		start, end := f.Resolve(sp)
		r.Start = &PositionJSON{Line: start.Line, Col: start.Col}
		r.End = &PositionJSON{Line: end.Line, Col: end.Col}
	}
	return r
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	f := b.fs.Get(d.File)
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Range:    b.rangeOf(f, d.Primary),
	}
	if !b.opts.IncludeNotes {
		return out
	}
	for _, n := range d.Notes {
		nf := b.fs.Get(n.File)
		note := NoteJSON{Message: n.Msg, Range: b.rangeOf(nf, n.Span)}
		if n.File != d.File {
			note.File = formatPath(nf, b.opts.PathMode, b.fs.BaseDir())
		}
		out.Notes = append(out.Notes, note)
	}
	return out
}

// BuildDiagnosticsOutput builds the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	out := DiagnosticsOutput{Files: []FileDiagnosticsJSON{}}
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
		out.Truncated = true
	}
	if bag.Dropped() > 0 {
		out.Truncated = true
	}

	b := jsonBuilder{fs: fs, opts: opts}
	byFile := make(map[source.FileID]int)
	for _, d := range items {
		i, ok := byFile[d.File]
		if !ok {
			i = len(out.Files)
			byFile[d.File] = i
			out.Files = append(out.Files, FileDiagnosticsJSON{
				Path: formatPath(fs.Get(d.File), opts.PathMode, fs.BaseDir()),
			})
		}
		out.Files[i].Diagnostics = append(out.Files[i].Diagnostics, b.diagnostic(d))
		switch {
		case d.Severity >= diag.SevError:
			out.Errors++
		case d.Severity == diag.SevWarning:
			out.Warnings++
		}
		out.Count++
	}
	return out
}

// JSON writes diagnostics as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
