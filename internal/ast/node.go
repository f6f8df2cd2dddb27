package ast

import "nx/internal/source"

// Type is the type annotation slot of a node. Only NoType exists for now.
type Type uint8

const NoType Type = 0

func (t Type) String() string {
	if t == NoType {
		return "NoType"
	}
	return "Type(?)"
}

type Data struct {
	Span source.Span
	Type Type
}

type Node struct {
	Kind Kind
	Data Data
}

func NewNode(kind Kind, sp source.Span) Node {
	return Node{Kind: kind, Data: Data{Span: sp, Type: NoType}}
}

func (n Node) Span() source.Span { return n.Data.Span }
