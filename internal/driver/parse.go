package driver

import (
	"context"
	"fmt"
	"time"

	"nx/internal/ast"
	"nx/internal/diag"
	"nx/internal/parser"
	"nx/internal/project"
	"nx/internal/source"
	"nx/internal/token"
	"nx/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // nil, если результат взят из кеша
	Nodes   []ast.Node
	Bag     *diag.Bag
	Err     error // первая ошибка лексера или парсера
	Cached  bool
}

// Parse loads path, tokenizes and parses it.
// Only I/O failures are returned as error; lexical and syntax errors end up in the result.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	ctx, span := trace.StartSpan(opts.withTracer(ctx), trace.ScopeDriver, "parse")
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

	res := parseFile(ctx, file, opts)
	res.FileSet = fs
	if res.Err != nil {
		span.Fail(res.Err)
	}
	return res, nil
}

// parseFile прогоняет лексер и парсер по одному файлу, используя дисковый кеш, если он задан.
func parseFile(ctx context.Context, f *source.File, opts Options) *ParseResult {
	res := &ParseResult{File: f, Bag: diag.NewBag(opts.MaxDiagnostics)}

	var key project.Digest
	if opts.Cache != nil {
		key = cacheKey(f, opts)
		if nodes, diags, ok := loadCached(f, opts, key, res.Bag); ok {
			for _, d := range diags {
				res.Bag.Add(d)
			}
			res.Nodes = nodes
			res.Cached = true
			emit(opts.Progress, Event{File: f.Path, Stage: StageCache, Status: StatusDone})
			return res
		}
	}

	tokens, err := lexFile(ctx, f, res.Bag, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Tokens = tokens

	emit(opts.Progress, Event{File: f.Path, Stage: StageParse, Status: StatusWorking})
	done := opts.Timer.Track(string(StageParse), f.Path)
	start := time.Now()

	nodes, err := parser.ParseWith(ctx, tokens, parser.Options{
		Reporter:    diag.BagReporter{Bag: res.Bag},
		File:        f.ID,
		Tracer:      trace.FromContext(ctx),
		ParentSpan:  trace.ParentID(ctx),
		WarnSkipped: opts.WarnSkipped,
	})
	if err != nil {
		done("error")
		emit(opts.Progress, Event{File: f.Path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		res.Err = err
		return res
	}
	done(fmt.Sprintf("%d nodes", len(nodes)))
	res.Nodes = nodes

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, nodesToPayload(f, nodes, res.Bag.Items())); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, f.ID, source.Span{},
				"failed to write cache entry: "+err.Error()).Emit()
		}
	}
	return res
}

// loadCached returns nodes for f from the disk cache. An entry that does not match
// the file is treated as a miss.
func loadCached(f *source.File, opts Options, key project.Digest, bag *diag.Bag) ([]ast.Node, []diag.Diagnostic, bool) {
	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil {
		diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.IOCacheError, f.ID, source.Span{},
			"failed to read cache entry: "+err.Error()).Emit()
		return nil, nil, false
	}
	if !hit {
		return nil, nil, false
	}
	return payloadToNodes(&payload, f)
}
