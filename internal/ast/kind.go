package ast

// Kind is the closed set of node kinds.
type Kind uint8

const (
	// InvalidKind is the zero value; parser output never contains it.
	InvalidKind Kind = iota

	Visible
	Invisible

	// Types
	Unit
	Usize
	Int
	Flt
	Str

	// Literals
	Integer
	Float
	String

	Identifier

	StartFunction
	EndFunction
	StartStatement
	EndStatement
	StartExpression
	EndExpression

	// Части функции, которые пока не разбираются
	PendingParams
	PendingReturnType
	PendingBody

	kindCount
)

var kindNames = [...]string{
	InvalidKind:       "Invalid",
	Visible:           "Visible",
	Invisible:         "Invisible",
	Unit:              "Unit",
	Usize:             "Usize",
	Int:               "Int",
	Flt:               "Flt",
	Str:               "Str",
	Integer:           "Integer",
	Float:             "Float",
	String:            "String",
	Identifier:        "Identifier",
	StartFunction:     "StartFunction",
	EndFunction:       "EndFunction",
	StartStatement:    "StartStatement",
	EndStatement:      "EndStatement",
	StartExpression:   "StartExpression",
	EndExpression:     "EndExpression",
	PendingParams:     "PendingParams",
	PendingReturnType: "PendingReturnType",
	PendingBody:       "PendingBody",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

func (k Kind) Valid() bool { return k > InvalidKind && k < kindCount }

// IsStart reports whether k opens a bracketed region.
func (k Kind) IsStart() bool {
	return k == StartFunction || k == StartStatement || k == StartExpression
}

// IsEnd reports whether k closes a bracketed region.
func (k Kind) IsEnd() bool {
	return k == EndFunction || k == EndStatement || k == EndExpression
}

// Pair returns the matching bracket kind, or InvalidKind for non-brackets.
func (k Kind) Pair() Kind {
	switch k {
	case StartFunction:
		return EndFunction
	case EndFunction:
		return StartFunction
	case StartStatement:
		return EndStatement
	case EndStatement:
		return StartStatement
	case StartExpression:
		return EndExpression
	case EndExpression:
		return StartExpression
	default:
		return InvalidKind
	}
}

// IsPending reports placeholder kinds for function parts that are not parsed yet.
func (k Kind) IsPending() bool {
	return k == PendingParams || k == PendingReturnType || k == PendingBody
}
