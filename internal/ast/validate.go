package ast

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKind = errors.New("invalid node kind")
	ErrUnbalanced  = errors.New("unbalanced start/end markers")
)

// Validate checks that every node has a valid kind and that Start/End
// markers are balanced and properly nested.
func Validate(nodes []Node) error {
	var stack []int
	for i, n := range nodes {
		switch {
		case !n.Kind.Valid():
			return fmt.Errorf("node %d: %w: %s", i, ErrInvalidKind, n.Kind)
		case n.Kind.IsStart():
			stack = append(stack, i)
		case n.Kind.IsEnd():
			if len(stack) == 0 {
				return fmt.Errorf("node %d: %w: %s without opener", i, ErrUnbalanced, n.Kind)
			}
			open := nodes[stack[len(stack)-1]].Kind
			if open.Pair() != n.Kind {
				return fmt.Errorf("node %d: %w: %s closes %s", i, ErrUnbalanced, n.Kind, open)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		i := stack[len(stack)-1]
		return fmt.Errorf("node %d: %w: %s never closed", i, ErrUnbalanced, nodes[i].Kind)
	}
	return nil
}

// Range is an inclusive [Start, End] index range into a node sequence.
type Range struct{ Start, End int }

// Functions returns the ranges of top-level functions, StartFunction through
// its matching EndFunction. Unbalanced tails are ignored.
func Functions(nodes []Node) []Range {
	var out []Range
	depth, start := 0, -1
	for i, n := range nodes {
		switch {
		case n.Kind.IsStart():
			if depth == 0 && n.Kind == StartFunction {
				start = i
			}
			depth++
		case n.Kind.IsEnd() && depth > 0:
			depth--
			if depth == 0 && start >= 0 && n.Kind == EndFunction {
				out = append(out, Range{Start: start, End: i})
				start = -1
			}
		}
	}
	return out
}
