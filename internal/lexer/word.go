package lexer

import "nx/internal/token"

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

func isWordByte(b byte) bool {
	return b == '_' || isDigit(b) || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// scanWord reads the next word: a run of [A-Za-z0-9_] or exactly one
// character (a whole UTF-8 rune) otherwise. Always consumes at least one byte.
func (lx *Lexer) scanWord() {
	if isWordByte(lx.cursor.Peek()) {
		lx.cursor.BumpWhile(isWordByte)
		return
	}
	lx.cursor.BumpRune()
}

// classify maps a word to its kind: reserved table first, then integer
// shape, then identifier shape.
func classify(word string) (token.Kind, bool) {
	if k, ok := token.LookupReserved(word); ok {
		return k, true
	}
	if isIntegerShape(word) {
		return token.IntVal, true
	}
	if isIdentShape(word) {
		return token.IdxVal, true
	}
	return token.Invalid, false
}

// isIntegerShape: digits and underscores, not starting with '_'.
func isIntegerShape(word string) bool {
	if word == "" || word[0] == '_' {
		return false
	}
	for i := 0; i < len(word); i++ {
		if !isDigit(word[i]) && word[i] != '_' {
			return false
		}
	}
	return true
}

func isIdentShape(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if !isWordByte(word[i]) {
			return false
		}
	}
	return true
}
