package diag

import "nx/internal/source"

// Reporter receives diagnostics from the lexer and parser. Implementations
// decide where they go; a nil Reporter is allowed wherever one is accepted.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReportBuilder lets a call site attach notes before the diagnostic leaves.
//
//	diag.ReportError(r, diag.SynExpectIdentifier, file, sp, "expected identifier").
//		WithNote(fnSpan, "function starts here").
//		Emit()
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func report(r Reporter, d Diagnostic) *ReportBuilder {
	return &ReportBuilder{to: r, d: d}
}

func ReportError(r Reporter, code Code, file source.FileID, primary source.Span, msg string) *ReportBuilder {
	return report(r, New(SevError, code, file, primary, msg))
}

func ReportWarning(r Reporter, code Code, file source.FileID, primary source.Span, msg string) *ReportBuilder {
	return report(r, New(SevWarning, code, file, primary, msg))
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

// Emit hands the diagnostic over; repeated calls are no-ops.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		b.to.Report(b.d)
	}
}
