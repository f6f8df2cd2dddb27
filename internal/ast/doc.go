// Package ast holds the flat syntax tree of nx.
//
// A parsed file is one linear sequence of nodes. Nesting exists only through
// matching Start/End pairs (StartFunction ... EndFunction), so a consumer
// walks the slice and keeps its own depth. Validate checks the pairing.
package ast
