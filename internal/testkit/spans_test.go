package testkit

import (
	"testing"

	"nx/internal/ast"
	"nx/internal/lexer"
	"nx/internal/parser"
	"nx/internal/source"
	"nx/internal/token"
)

func TestCheckTokenSpansAcceptsLexerOutput(t *testing.T) {
	src := "// c\nfn main() {\n\tlet x = 1;\n}\n"
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if err := CheckTokenSpans(toks, src); err != nil {
		t.Fatalf("CheckTokenSpans: %v", err)
	}
}

func TestCheckTokenSpansRejects(t *testing.T) {
	src := "fn main"
	tests := []struct {
		name string
		toks []token.Token
	}{
		{"empty span", []token.Token{{Kind: token.Fn, Span: source.Span{Start: 0, End: 0}}}},
		{"text mismatch", []token.Token{{Kind: token.Fn, Span: source.Span{Start: 0, End: 2}, Text: "fx"}}},
		{"skipped word", []token.Token{{Kind: token.IdxVal, Span: source.Span{Start: 3, End: 7}, Text: "main"}}},
		{"trailing", []token.Token{{Kind: token.Fn, Span: source.Span{Start: 0, End: 2}, Text: "fn"}}},
		{"overlap", []token.Token{
			{Kind: token.Fn, Span: source.Span{Start: 0, End: 2}, Text: "fn"},
			{Kind: token.IdxVal, Span: source.Span{Start: 1, End: 7}, Text: "n main"},
		}},
		{"past end", []token.Token{{Kind: token.IdxVal, Span: source.Span{Start: 0, End: 9}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckTokenSpans(tt.toks, src); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestCheckNodeSpans(t *testing.T) {
	src := "let a; fn main() {} fn other"
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	nodes, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := CheckNodeSpans(nodes, src); err != nil {
		t.Fatalf("CheckNodeSpans: %v", err)
	}

	bad := append([]ast.Node(nil), nodes...)
	bad[3] = ast.NewNode(ast.PendingParams, source.Span{Start: 10, End: 12})
	if err := CheckNodeSpans(bad, src); err == nil {
		t.Fatalf("wide pending node must be rejected")
	}
	if err := CheckNodeSpans(nodes[:6], src); err == nil {
		t.Fatalf("unbalanced sequence must be rejected")
	}
	if err := CheckNodeSpans(nodes, "fn"); err == nil {
		t.Fatalf("spans past the end must be rejected")
	}
}
