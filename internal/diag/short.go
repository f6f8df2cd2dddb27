package diag

import (
	"fmt"
	"sort"
	"strings"

	"nx/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "path:line:col: SEVERITY CODE: message", sorted deterministically.
// Notes follow their diagnostic, indented, when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	notes := make(map[int][]shortDiagnostic)
	for _, d := range diags {
		idx := len(rendered)
		rendered = append(rendered, render(fs, d.File, d.Primary, d.Severity.String(), d.Code.ID(), d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				notes[idx] = append(notes[idx], render(fs, n.File, n.Span, "note", "", n.Msg))
			}
		}
	}

	order := make([]int, len(rendered))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		di, dj := rendered[order[i]], rendered[order[j]]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var sb strings.Builder
	for _, i := range order {
		writeShort(&sb, rendered[i], "")
		for _, n := range notes[i] {
			writeShort(&sb, n, "  ")
		}
	}
	return sb.String()
}

func render(fs *source.FileSet, file source.FileID, sp source.Span, sev, code, msg string) shortDiagnostic {
	out := shortDiagnostic{Severity: sev, Code: code, Message: msg, Path: "<unknown>"}
	if f := fs.Get(file); f != nil {
		out.Path = f.Path
		start, _ := f.Resolve(sp)
		out.Line, out.Column = start.Line, start.Col
	}
	return out
}

func writeShort(sb *strings.Builder, d shortDiagnostic, indent string) {
	fmt.Fprintf(sb, "%s%s:%d:%d: %s", indent, d.Path, d.Line, d.Column, d.Severity)
	if d.Code != "" {
		fmt.Fprintf(sb, " %s", d.Code)
	}
	fmt.Fprintf(sb, ": %s\n", d.Message)
}
