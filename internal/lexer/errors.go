package lexer

import (
	"errors"
	"fmt"

	"nx/internal/diag"
	"nx/internal/source"
)

var (
	ErrEmptyInput         = errors.New("empty input")
	ErrUnclassifiableWord = errors.New("unclassifiable word")
	ErrTooManyTokens      = errors.New("too many tokens")
)

// Error is a tokenization failure located in the source.
// It matches the package sentinels through errors.Is.
type Error struct {
	Code diag.Code
	Span source.Span
	Word string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Span, e.Msg)
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case diag.LexEmptyInput:
		return ErrEmptyInput
	case diag.LexUnclassifiableWord:
		return ErrUnclassifiableWord
	case diag.LexTooManyTokens:
		return ErrTooManyTokens
	default:
		return nil
	}
}

func (lx *Lexer) fail(code diag.Code, sp source.Span, word, msg string) *Error {
	err := &Error{Code: code, Span: sp, Word: word, Msg: msg}
	diag.ReportError(lx.opts.Reporter, code, lx.opts.File, sp, msg).Emit()
	return err
}
