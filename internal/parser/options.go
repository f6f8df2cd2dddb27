package parser

import (
	"nx/internal/ast"
	"nx/internal/diag"
	"nx/internal/source"
	"nx/internal/trace"
)

type Options struct {
	Reporter   diag.Reporter // может быть nil
	File       source.FileID // файл для диагностик
	Tracer     trace.Tracer  // nil → trace.Nop
	ParentSpan uint64        // родительский trace span
	Hints      ast.Hints     // ёмкость выходной арены
	// WarnSkipped reports every non-comment token skipped at top level as a warning.
	WarnSkipped bool
}

func (o Options) withDefaults(tokens int) Options {
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	if o.Hints.Nodes == 0 {
		// fn + имя дают 7 узлов, остальное грубая оценка
		o.Hints.Nodes = uint(tokens/2 + 8)
	}
	return o
}
