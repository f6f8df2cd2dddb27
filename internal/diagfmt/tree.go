package diagfmt

import (
	"fmt"
	"io"

	"nx/internal/ast"
	"nx/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// buildNodesTree groups the flat sequence into a tree: one child per top-level
// function, its inner nodes below it. Nodes outside functions hang off the root.
func buildNodesTree(nodes []ast.Node, src string, f *source.File, header string) *treeNode {
	root := &treeNode{label: header}
	var stack []*treeNode
	for _, n := range nodes {
		label := n.Kind.String()
		if hasText(n.Kind) {
			label += " " + n.Span().Slice(src)
		}
		switch {
		case n.Kind.IsStart():
			node := &treeNode{label: fmt.Sprintf("%s (%s)", label, formatSpan(n.Span(), f))}
			parent := parentOf(root, stack)
			parent.children = append(parent.children, node)
			stack = append(stack, node)
		case n.Kind.IsEnd() && len(stack) > 0:
			stack = stack[:len(stack)-1]
		default:
			parent := parentOf(root, stack)
			parent.children = append(parent.children, &treeNode{label: label})
		}
	}
	return root
}

func parentOf(root *treeNode, stack []*treeNode) *treeNode {
	if len(stack) == 0 {
		return root
	}
	return stack[len(stack)-1]
}

// FormatNodesTree рисует ASCII-дерево: файл → функции → их узлы.
func FormatNodesTree(w io.Writer, nodes []ast.Node, src string, f *source.File) error {
	header := "File"
	if f != nil {
		header = f.Path
	}
	for _, line := range renderTree(buildNodesTree(nodes, src, f, header)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// renderTree рисует узел и его потомков с ветками ├─ / └─.
func renderTree(node *treeNode) []string {
	lines := []string{node.label}
	for i, child := range node.children {
		branch, indent := "├─ ", "│  "
		if i == len(node.children)-1 {
			branch, indent = "└─ ", "   "
		}
		for j, line := range renderTree(child) {
			if j == 0 {
				lines = append(lines, branch+line)
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return lines
}
