package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the unclassified sentinel. It never leaves the lexer.
	Invalid Kind = iota

	// Documentation is a "///" line comment.
	Documentation
	// Comment is a "//" line comment.
	Comment

	// Symbols
	Semicolon    // ;
	Colon        // :
	Comma        // ,
	Dot          // .
	Equal        // =
	Plus         // +
	Minus        // -
	Star         // *
	Slash        // /
	LParenthesis // (
	RParenthesis // )
	LBracket     // [
	RBracket     // ]
	LAngle       // <
	RAngle       // >
	LBrace       // {
	RBrace       // }
	Exclamation  // !
	Question     // ?
	Dollar       // $
	Hash         // #

	// Directives
	Use      // use
	Let      // let
	Var      // var
	As       // as
	In       // in
	Return   // return
	Break    // break
	Continue // continue

	// Blocks
	Macro     // macro
	Module    // module
	Fn        // fn
	Struct    // struct
	Enum      // enum
	Instance  // instance
	Implement // implement
	Match     // match
	If        // if
	Else      // else
	For       // for
	While     // while
	Loop      // loop

	// Types
	Unit  // unit
	Usize // usize
	Int   // int
	Flt   // flt
	Str   // str
	I8    // i8
	U8    // u8
	I16   // i16
	U16   // u16
	I32   // i32
	U32   // u32
	I64   // i64
	U64   // u64
	F32   // f32
	F64   // f64

	// Values
	IntVal // integer literal
	FltVal // float literal (not produced yet)
	StrVal // string literal (not produced yet)
	IdxVal // identifier

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:       "Invalid",
	Documentation: "Documentation",
	Comment:       "Comment",
	Semicolon:     "Semicolon",
	Colon:         "Colon",
	Comma:         "Comma",
	Dot:           "Dot",
	Equal:         "Equal",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	LParenthesis:  "LParenthesis",
	RParenthesis:  "RParenthesis",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	LAngle:        "LAngle",
	RAngle:        "RAngle",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	Exclamation:   "Exclamation",
	Question:      "Question",
	Dollar:        "Dollar",
	Hash:          "Hash",
	Use:           "Use",
	Let:           "Let",
	Var:           "Var",
	As:            "As",
	In:            "In",
	Return:        "Return",
	Break:         "Break",
	Continue:      "Continue",
	Macro:         "Macro",
	Module:        "Module",
	Fn:            "Fn",
	Struct:        "Struct",
	Enum:          "Enum",
	Instance:      "Instance",
	Implement:     "Implement",
	Match:         "Match",
	If:            "If",
	Else:          "Else",
	For:           "For",
	While:         "While",
	Loop:          "Loop",
	Unit:          "Unit",
	Usize:         "Usize",
	Int:           "Int",
	Flt:           "Flt",
	Str:           "Str",
	I8:            "I8",
	U8:            "U8",
	I16:           "I16",
	U16:           "U16",
	I32:           "I32",
	U32:           "U32",
	I64:           "I64",
	U64:           "U64",
	F32:           "F32",
	F64:           "F64",
	IntVal:        "IntVal",
	FltVal:        "FltVal",
	StrVal:        "StrVal",
	IdxVal:        "IdxVal",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Valid reports whether k is a real token kind (not the sentinel).
func (k Kind) Valid() bool { return k > Invalid && k < kindCount }

func (k Kind) IsSymbol() bool    { return k >= Semicolon && k <= Hash }
func (k Kind) IsDirective() bool { return k >= Use && k <= Continue }
func (k Kind) IsBlock() bool     { return k >= Macro && k <= Loop }
func (k Kind) IsType() bool      { return k >= Unit && k <= F64 }

// IsKeyword covers directive, block and type keywords.
func (k Kind) IsKeyword() bool { return k.IsDirective() || k.IsBlock() || k.IsType() }

// IsValue reports literal and identifier kinds.
func (k Kind) IsValue() bool   { return k >= IntVal && k <= IdxVal }
func (k Kind) IsComment() bool { return k == Comment || k == Documentation }
