package diagfmt

import (
	"io"

	"github.com/alecthomas/repr"

	"nx/internal/ast"
)

// FormatNodesRepr dumps nodes as Go syntax, the way a debugger would show them.
func FormatNodesRepr(w io.Writer, nodes []ast.Node) error {
	_, err := io.WriteString(w, repr.String(nodes, repr.Indent("  "))+"\n")
	return err
}
