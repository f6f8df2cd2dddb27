package lexer

import (
	"fmt"

	"fortio.org/safecast"
	"go4.org/mem"

	"nx/internal/source"
)

// Cursor представляет собой позицию в исходном тексте
type Cursor struct {
	src   mem.RO
	Off   uint32
	limit uint32
}

// NewCursor creates a cursor over src without copying it.
func NewCursor(src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len source overflow: %w", err))
	}
	return Cursor{src: mem.S(src), limit: limit}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src.At(int(c.Off))
}

// PeekAt читает байт на n позиций вперёд, иначе 0
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.limit {
		return 0
	}
	return c.src.At(int(c.Off + n))
}

// BumpRune consumes one whole UTF-8 sequence; invalid bytes count as one.
func (c *Cursor) BumpRune() {
	if c.EOF() {
		return
	}
	_, n := mem.DecodeRune(c.src.SliceFrom(int(c.Off)))
	if n < 1 {
		n = 1
	}
	c.Off += uint32(n) //nolint:gosec // n <= utf8.UTFMax
}

// BumpWhile consumes bytes while pred holds.
func (c *Cursor) BumpWhile(pred func(byte) bool) {
	for !c.EOF() && pred(c.src.At(int(c.Off))) {
		c.Off++
	}
}

// BumpToNewline moves the cursor onto the next '\n' or to the end.
func (c *Cursor) BumpToNewline() {
	if c.EOF() {
		return
	}
	rest := c.src.SliceFrom(int(c.Off))
	i := mem.IndexByte(rest, '\n')
	if i < 0 {
		c.Off = c.limit
		return
	}
	c.Off += uint32(i) //nolint:gosec // i < len(rest)
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off}
}

// CountByte counts occurrences of b in the whole source.
func (c *Cursor) CountByte(b byte) int {
	n := 0
	rest := c.src
	for {
		i := mem.IndexByte(rest, b)
		if i < 0 {
			return n
		}
		n++
		rest = rest.SliceFrom(i + 1)
	}
}
