package diagfmt

import (
	"fmt"

	"nx/internal/source"
)

// formatSpan formats a span as "startLine:startCol-endLine:endCol" when the
// file is known and as "span(start-end)" otherwise.
func formatSpan(span source.Span, f *source.File) string {
	if f != nil {
		start, end := f.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.String(), baseDir)
}
