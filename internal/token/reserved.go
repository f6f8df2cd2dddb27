package token

var reserved = map[string]Kind{
	";": Semicolon,
	":": Colon,
	",": Comma,
	".": Dot,
	"=": Equal,
	"+": Plus,
	"-": Minus,
	"*": Star,
	"/": Slash,
	"(": LParenthesis,
	")": RParenthesis,
	"[": LBracket,
	"]": RBracket,
	"<": LAngle,
	">": RAngle,
	"{": LBrace,
	"}": RBrace,
	"!": Exclamation,
	"?": Question,
	"$": Dollar,
	"#": Hash,

	"use":      Use,
	"let":      Let,
	"var":      Var,
	"as":       As,
	"in":       In,
	"return":   Return,
	"break":    Break,
	"continue": Continue,

	"macro":     Macro,
	"module":    Module,
	"fn":        Fn,
	"struct":    Struct,
	"enum":      Enum,
	"instance":  Instance,
	"implement": Implement,
	"match":     Match,
	"if":        If,
	"else":      Else,
	"for":       For,
	"while":     While,
	"loop":      Loop,

	"unit":  Unit,
	"usize": Usize,
	"int":   Int,
	"flt":   Flt,
	"str":   Str,
	"i8":    I8,
	"u8":    U8,
	"i16":   I16,
	"u16":   U16,
	"i32":   I32,
	"u32":   U32,
	"i64":   I64,
	"u64":   U64,
	"f32":   F32,
	"f64":   F64,
}

// LookupReserved возвращает тип символа или ключевого слова.
// Сравнение точное и регистрозависимое, только по целому слову.
func LookupReserved(word string) (Kind, bool) {
	k, ok := reserved[word]
	return k, ok
}
