package driver

import (
	"context"
	"io"
	"os"

	"nx/internal/observ"
	"nx/internal/source"
	"nx/internal/trace"
)

// Options configure one driver run. The zero value is usable.
type Options struct {
	MaxDiagnostics int // лимит на файл; 0 = без лимита
	TokensPerLine  int
	CapFactor      int
	Jobs           int // 0 → GOMAXPROCS
	WarnSkipped    bool

	Tracer   trace.Tracer  // nil → трейсер из ctx
	Timer    *observ.Timer // nil → без замеров
	Cache    *DiskCache    // nil → без кеша
	Progress ProgressSink  // nil → без событий
	Stdin    io.Reader     // источник для пути "-"; nil → os.Stdin
}

// StdinPath is the path that makes Tokenize and Parse read standard input.
const StdinPath = "-"

const stdinName = "<stdin>"

func (o Options) stdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

// load регистрирует path в fs; "-" читается из Stdin.
func (o Options) load(fs *source.FileSet, path string) (source.FileID, error) {
	if path == StdinPath {
		return fs.LoadFrom(stdinName, o.stdin())
	}
	return fs.Load(path)
}

// withTracer кладёт o.Tracer в контекст; без него остаётся трейсер из ctx.
func (o Options) withTracer(ctx context.Context) context.Context {
	if o.Tracer == nil {
		return ctx
	}
	return trace.WithTracer(ctx, o.Tracer)
}
