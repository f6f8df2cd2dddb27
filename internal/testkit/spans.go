package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"nx/internal/ast"
	"nx/internal/token"
)

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\n' }

// CheckTokenSpans runs the span invariants of a successful tokenization:
// 1) every token span is non-empty and within src
// 2) spans are increasing and do not overlap
// 3) token text equals the source slice
// 4) only blanks lie between, before and after tokens
func CheckTokenSpans(toks []token.Token, src string) error {
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prev uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.Start >= sp.End {
			return fmt.Errorf("token %d has empty span %s", i, sp)
		}
		if sp.Start < prev {
			return fmt.Errorf("token %d span %s overlaps previous end %d", i, sp, prev)
		}
		if sp.End > size {
			return fmt.Errorf("token %d span %s beyond content (%d)", i, sp, size)
		}
		if gap := src[prev:sp.Start]; !allBlank(gap) {
			return fmt.Errorf("non-blank bytes %q skipped before token %d", gap, i)
		}
		if tok.Text != src[sp.Start:sp.End] {
			return fmt.Errorf("token %d text %q != source %q", i, tok.Text, src[sp.Start:sp.End])
		}
		prev = sp.End
	}
	if tail := src[prev:]; !allBlank(tail) {
		return fmt.Errorf("trailing bytes %q not tokenized", tail)
	}
	return nil
}

func allBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isBlank(s[i]) {
			return false
		}
	}
	return true
}

// CheckNodeSpans checks a parse result against its source:
// 1) the sequence is balanced (ast.Validate)
// 2) every span is within src
// 3) pending nodes are zero-width, text nodes are not
// 4) an end node covers everything since its start node
func CheckNodeSpans(nodes []ast.Node, src string) error {
	if err := ast.Validate(nodes); err != nil {
		return err
	}
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var open []int
	for i, n := range nodes {
		sp := n.Span()
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("node %d (%s) span %s out of bounds (%d)", i, n.Kind, sp, size)
		}
		switch {
		case n.Kind.IsPending() && !sp.Empty():
			return fmt.Errorf("pending node %d (%s) has width: %s", i, n.Kind, sp)
		case n.Kind == ast.Identifier && sp.Empty():
			return fmt.Errorf("identifier node %d has empty span", i)
		case n.Kind.IsStart():
			open = append(open, i)
		case n.Kind.IsEnd():
			start := open[len(open)-1]
			open = open[:len(open)-1]
			for j := start; j < i; j++ {
				inner := nodes[j].Span()
				if inner.Start < sp.Start || inner.End > sp.End {
					return fmt.Errorf("node %d span %s escapes %s %s", j, inner, n.Kind, sp)
				}
			}
		}
	}
	return nil
}
