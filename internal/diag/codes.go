package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexEmptyInput         Code = 1001
	LexUnclassifiableWord Code = 1002
	LexTooManyTokens      Code = 1003

	// Парсерные
	SynEmptyInput         Code = 2001
	SynExpectIdentifier   Code = 2002
	SynUnbalancedBracket  Code = 2003
	SynUnexpectedTopLevel Code = 2004

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проект
	ProjManifestError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexEmptyInput:         "source is empty",
	LexUnclassifiableWord: "word cannot be classified as a token",
	LexTooManyTokens:      "token limit exceeded",
	SynEmptyInput:         "token stream is empty",
	SynExpectIdentifier:   "expected identifier",
	SynUnbalancedBracket:  "unbalanced start/end markers",
	SynUnexpectedTopLevel: "unexpected top-level token",
	IOLoadFileError:       "I/O load file error",
	IOCacheError:          "cache read/write error",
	ProjManifestError:     "invalid nx.toml",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
