// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Diagnostic is the central record: Severity, a stable numeric Code (rendered
// as LEX1001, SYN2002, ...), a short Message, the FileID and primary Span it
// points to, and optional Notes with secondary spans.
//
// Phases emit through a Reporter so that emission is decoupled from storage.
// BagReporter collects into a Bag, which supports sorting and deduplication.
// Rendering lives in internal/diagfmt.
//
// Package diag performs no IO and no formatting beyond the compact one-line
// form in FormatShort, which is used for golden comparisons in tests and for
// --quiet CLI output.
package diag
