package driver

import (
	"context"
	"fmt"
	"time"

	"nx/internal/diag"
	"nx/internal/lexer"
	"nx/internal/source"
	"nx/internal/token"
	"nx/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Err     error // ошибка лексера; она же лежит в Bag
}

// Tokenize loads path and splits it into tokens.
// Only I/O failures are returned as error; lexical errors end up in the result.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.StartSpan(opts.withTracer(ctx), trace.ScopeDriver, "tokenize")
	span.Set("path", path)
	defer span.End("")

	fs := source.NewFileSet()
	doneLoad := opts.Timer.Track(string(StageLoad), "")
	fileID, err := opts.load(fs, path)
	if err != nil {
		doneLoad("failed")
		span.Fail(err)
		return nil, err
	}
	file := fs.Get(fileID)
	doneLoad(fmt.Sprintf("%d bytes", len(file.Content)))

	bag := diag.NewBag(opts.MaxDiagnostics)
	tokens, lexErr := lexFile(ctx, file, bag, opts)
	if lexErr != nil {
		span.Fail(lexErr)
	}
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Err:     lexErr,
	}, nil
}

// lexFile runs the lexer over one loaded file, reporting into bag.
func lexFile(ctx context.Context, f *source.File, bag *diag.Bag, opts Options) ([]token.Token, error) {
	emit(opts.Progress, Event{File: f.Path, Stage: StageLex, Status: StatusWorking})
	done := opts.Timer.Track(string(StageLex), f.Path)
	start := time.Now()

	tokens, err := lexer.TokenizeWith(f.Content, nil, lexer.Options{
		Reporter:      diag.BagReporter{Bag: bag},
		File:          f.ID,
		TokensPerLine: opts.TokensPerLine,
		CapFactor:     opts.CapFactor,
		Tracer:        trace.FromContext(ctx),
		ParentSpan:    trace.ParentID(ctx),
	})
	if err != nil {
		done("error")
		emit(opts.Progress, Event{File: f.Path, Stage: StageLex, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return nil, err
	}
	done(fmt.Sprintf("%d tokens", len(tokens)))
	return tokens, nil
}
