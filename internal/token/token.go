package token

import (
	"nx/internal/source"
)

// Token represents a single source token with its location.
// Text is the matched source slice for every kind, so Span.Slice(src) == Text.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == IdxVal }

// IsLiteral reports whether the token is an integer, float or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntVal, FltVal, StrVal:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether the parser may skip the token without losing meaning.
func (t Token) IsTrivia() bool { return t.Kind.IsComment() }
