package lexer

import (
	"errors"
	"fmt"
	"io"
	"math"

	"nx/internal/diag"
	"nx/internal/token"
	"nx/internal/trace"
)

// Lexer turns nx source text into tokens one word at a time.
type Lexer struct {
	src    string
	cursor Cursor
	opts   Options
}

func New(src string, opts Options) *Lexer {
	return &Lexer{
		src:    src,
		cursor: NewCursor(src),
		opts:   opts.withDefaults(),
	}
}

// Next возвращает следующий токен; после конца текста io.EOF.
func (lx *Lexer) Next() (token.Token, error) {
	lx.cursor.BumpWhile(isBlank)
	if lx.cursor.EOF() {
		return token.Token{}, io.EOF
	}

	start := lx.cursor.Mark()
	lx.scanWord()

	// одиночный '/' всегда слово из одного байта, поэтому lookahead по байтам;
	// пробелы при этом не пропускаются: "/ /" это два Slash
	if lx.cursor.SpanFrom(start).Len() == 1 && lx.src[start] == '/' && lx.cursor.Peek() == '/' {
		kind := token.Comment
		if lx.cursor.PeekAt(1) == '/' {
			kind = token.Documentation
		}
		lx.cursor.BumpToNewline()
		return lx.emit(kind, start), nil
	}

	sp := lx.cursor.SpanFrom(start)
	word := lx.src[sp.Start:sp.End]
	kind, ok := classify(word)
	if !ok {
		return token.Token{}, lx.fail(diag.LexUnclassifiableWord, sp, word,
			fmt.Sprintf("unclassifiable word %q", word))
	}
	return lx.emit(kind, start), nil
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.src[sp.Start:sp.End]}
}

// Tokenize splits src into tokens with default options.
func Tokenize(src string) ([]token.Token, error) {
	return TokenizeWith(src, nil, Options{})
}

// TokenizeWith splits src into tokens, reusing buf when it is large enough.
// The output is capped at CapFactor times the (lines × TokensPerLine) guess.
func TokenizeWith(src string, buf []token.Token, opts Options) ([]token.Token, error) {
	lx := New(src, opts)
	span := trace.Begin(lx.opts.Tracer, trace.ScopePass, "lex", lx.opts.ParentSpan)

	toks, err := lx.all(buf)
	if err != nil {
		span.Fail(err).End("")
		return nil, err
	}
	span.SetInt("tokens", len(toks)).End("")
	return toks, nil
}

func (lx *Lexer) all(buf []token.Token) ([]token.Token, error) {
	if lx.src == "" {
		return nil, lx.fail(diag.LexEmptyInput, lx.cursor.SpanFrom(0), "", "source is empty")
	}

	guess := mulSat(lx.cursor.CountByte('\n')+1, lx.opts.TokensPerLine)
	limit := mulSat(guess, lx.opts.CapFactor)
	// каждый токен занимает хотя бы байт, больше len(src) не выделяем
	guess = min(guess, len(lx.src))
	if cap(buf) < guess {
		buf = make([]token.Token, 0, guess)
	} else {
		buf = buf[:0]
	}

	for {
		before := lx.cursor.Off
		tok, err := lx.Next()
		if errors.Is(err, io.EOF) {
			return buf, nil
		}
		if err != nil {
			return nil, err
		}
		if lx.cursor.Off <= before {
			panic(fmt.Sprintf("lexer made no progress at offset %d", before))
		}
		if len(buf) >= limit {
			return nil, lx.fail(diag.LexTooManyTokens, tok.Span, tok.Text,
				fmt.Sprintf("more than %d tokens", limit))
		}
		buf = append(buf, tok)
	}
}

// mulSat multiplies non-negative a and b, saturating at math.MaxInt.
func mulSat(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}
