package fuzztests

import (
	"errors"
	"testing"

	"nx/internal/diag"
	"nx/internal/lexer"
	"nx/internal/source"
	"nx/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.nx", input))
		src := file.Content

		bag := diag.NewBag(64)
		toks, err := lexer.TokenizeWith(src, nil, lexer.Options{
			Reporter: diag.BagReporter{Bag: bag},
			File:     file.ID,
		})
		if err != nil {
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error is not *lexer.Error: %T %v", err, err)
			}
			if !errors.Is(err, lexer.ErrEmptyInput) && !errors.Is(err, lexer.ErrUnclassifiableWord) &&
				!errors.Is(err, lexer.ErrTooManyTokens) {
				t.Fatalf("error matches no sentinel: %v", err)
			}
			if int(lexErr.Span.End) > len(src) || lexErr.Span.Start > lexErr.Span.End {
				t.Fatalf("error span %s out of bounds (len %d)", lexErr.Span, len(src))
			}
			if toks != nil {
				t.Fatalf("no partial result on error, got %d tokens", len(toks))
			}
			if !bag.HasErrors() {
				t.Fatalf("error was not reported")
			}
			return
		}

		if err := testkit.CheckTokenSpans(toks, src); err != nil {
			t.Fatalf("%v (input %q)", err, src)
		}
	})
}
