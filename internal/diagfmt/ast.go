package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nx/internal/ast"
	"nx/internal/source"
)

type NodeOutput struct {
	Index int         `json:"index"`
	Kind  string      `json:"kind"`
	Type  string      `json:"type"`
	Span  source.Span `json:"span"`
	Depth int         `json:"depth"`
	Text  string      `json:"text,omitempty"`
}

type FunctionOutput struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type NodesOutput struct {
	File      string           `json:"file,omitempty"`
	Nodes     []NodeOutput     `json:"nodes"`
	Functions []FunctionOutput `json:"functions"`
}

// hasText: узлы, для которых полезно показать исходный текст
func hasText(k ast.Kind) bool {
	switch k {
	case ast.Identifier, ast.Integer, ast.Float, ast.String:
		return true
	default:
		return false
	}
}

// walkDepth calls fn for every node with its nesting depth; an end marker
// gets the depth of its start marker.
func walkDepth(nodes []ast.Node, fn func(i, depth int, n ast.Node) error) error {
	depth := 0
	for i, n := range nodes {
		if n.Kind.IsEnd() && depth > 0 {
			depth--
		}
		if err := fn(i, depth, n); err != nil {
			return err
		}
		if n.Kind.IsStart() {
			depth++
		}
	}
	return nil
}

// functionName returns the first identifier inside the range.
func functionName(nodes []ast.Node, r ast.Range, src string) string {
	for _, n := range nodes[r.Start : r.End+1] {
		if n.Kind == ast.Identifier {
			return n.Span().Slice(src)
		}
	}
	return ""
}

// FormatNodesPretty печатает плоскую последовательность узлов с отступами по вложенности.
func FormatNodesPretty(w io.Writer, nodes []ast.Node, src string, f *source.File) error {
	return walkDepth(nodes, func(i, depth int, n ast.Node) error {
		label := strings.Repeat("  ", depth) + n.Kind.String()
		if hasText(n.Kind) {
			label += fmt.Sprintf(" %q", n.Span().Slice(src))
		}
		_, err := fmt.Fprintf(w, "%3d: %-28s %s\n", i, label, formatSpan(n.Span(), f))
		return err
	})
}

// BuildNodesOutput формирует структуру JSON-вывода без сериализации.
func BuildNodesOutput(nodes []ast.Node, src, path string) NodesOutput {
	out := NodesOutput{
		File:      path,
		Nodes:     make([]NodeOutput, 0, len(nodes)),
		Functions: []FunctionOutput{},
	}
	_ = walkDepth(nodes, func(i, depth int, n ast.Node) error { //nolint:errcheck // callback never fails
		no := NodeOutput{
			Index: i,
			Kind:  n.Kind.String(),
			Type:  n.Data.Type.String(),
			Span:  n.Span(),
			Depth: depth,
		}
		if hasText(n.Kind) {
			no.Text = n.Span().Slice(src)
		}
		out.Nodes = append(out.Nodes, no)
		return nil
	})
	for _, r := range ast.Functions(nodes) {
		out.Functions = append(out.Functions, FunctionOutput{
			Name:  functionName(nodes, r, src),
			Start: r.Start,
			End:   r.End,
		})
	}
	return out
}

// FormatNodesJSON выводит узлы и диапазоны функций в JSON формате
func FormatNodesJSON(w io.Writer, nodes []ast.Node, src, path string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildNodesOutput(nodes, src, path))
}
