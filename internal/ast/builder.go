package ast

import "nx/internal/source"

type Hints struct{ Nodes uint }

// Builder accumulates the committed node sequence of one parse.
type Builder struct {
	Nodes *Arena[Node]
}

func NewBuilder(hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 6
	}
	return &Builder{Nodes: NewArena[Node](hints.Nodes)}
}

func (b *Builder) Push(kind Kind, sp source.Span) uint32 {
	return b.Nodes.Allocate(NewNode(kind, sp))
}

// Commit appends a fully parsed group of nodes.
func (b *Builder) Commit(nodes []Node) {
	if len(nodes) == 0 {
		return
	}
	b.Nodes.AllocateAll(nodes)
}

// Result returns the committed sequence; the builder must not be used afterwards.
func (b *Builder) Result() []Node {
	return b.Nodes.Slice()
}
