// Package token defines lexical token kinds for the nx front-end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Invalid is the "unclassified" sentinel; the lexer never returns it.
//   - Reserved words are matched exactly and case-sensitively: "int" is a
//     type keyword, "integer" and "Int" are identifiers.
//   - Delimiters are single characters; there are no multi-character
//     operators, so "==" is two Equal tokens.
package token
