package parser

import (
	"errors"
	"fmt"

	"nx/internal/diag"
	"nx/internal/source"
	"nx/internal/token"
)

var (
	ErrEmptyInput         = errors.New("empty token sequence")
	ErrExpectedIdentifier = errors.New("expected identifier")
)

// Error is a parse failure at a token position.
type Error struct {
	Code  diag.Code
	Span  source.Span
	Found token.Kind // token.Invalid when the input ran out
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Span, e.Msg)
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case diag.SynEmptyInput:
		return ErrEmptyInput
	case diag.SynExpectIdentifier:
		return ErrExpectedIdentifier
	default:
		return nil
	}
}

func (p *Parser) fail(code diag.Code, sp source.Span, found token.Kind, msg string) *Error {
	diag.ReportError(p.opts.Reporter, code, p.opts.File, sp, msg).Emit()
	return &Error{Code: code, Span: sp, Found: found, Msg: msg}
}
