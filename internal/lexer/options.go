package lexer

import (
	"nx/internal/diag"
	"nx/internal/source"
	"nx/internal/trace"
)

const (
	// DefaultTokensPerLine is the per-line guess used to size the output buffer.
	DefaultTokensPerLine = 20
	// DefaultCapFactor bounds the output at CapFactor times the guess.
	DefaultCapFactor = 5

	// Larger values are clamped.
	MaxTokensPerLine = 1 << 12
	MaxCapFactor     = 1 << 10
)

// Tuning returns the values the lexer actually uses for the given settings:
// zero or negative picks the default, anything above the maximum is clamped.
func Tuning(tokensPerLine, capFactor int) (perLine, factor int) {
	return tune(tokensPerLine, DefaultTokensPerLine, MaxTokensPerLine),
		tune(capFactor, DefaultCapFactor, MaxCapFactor)
}

func tune(v, def, hi int) int {
	if v <= 0 {
		return def
	}
	return min(v, hi)
}

type Options struct {
	Reporter      diag.Reporter // может быть nil, тогда ошибка только возвращается
	File          source.FileID // файл, к которому привязываются диагностики
	TokensPerLine int           // 0 → DefaultTokensPerLine, не больше MaxTokensPerLine
	CapFactor     int           // 0 → DefaultCapFactor, не больше MaxCapFactor
	Tracer        trace.Tracer  // nil → trace.Nop
	ParentSpan    uint64        // родительский trace span
}

func (o Options) withDefaults() Options {
	o.TokensPerLine, o.CapFactor = Tuning(o.TokensPerLine, o.CapFactor)
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	return o
}
