package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"nx/internal/diag"
	"nx/internal/source"
	"nx/internal/token"
	"nx/internal/trace"
)

// SourceExt is the extension of nx source files.
const SourceExt = ".nx"

// TokenizeDirResult is the lexer output for one file of a directory run.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
	Err    error
}

// ParseDirResult is one file of a directory parse, in ListFiles order.
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	*ParseResult
}

// ListFiles walks dir recursively and returns the paths of all nx sources, sorted.
func ListFiles(dir string) ([]string, error) {
	var files []string
	walk := func(path string, entry fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case entry.Type().IsRegular() && filepath.Ext(path) == SourceExt:
			files = append(files, path)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	slices.Sort(files) // WalkDir идёт в лексическом порядке, но только внутри каталога
	return files, nil
}

type preloaded struct {
	fileSet    *source.FileSet
	files      []string
	ids        []source.FileID
	loadErrors map[int]error
}

// preload reads every file up front; FileSet is not safe for concurrent Add.
// A file that fails to load is registered empty so diagnostics can name it.
func preload(dir string, files []string, opts Options) *preloaded {
	done := opts.Timer.Track(string(StageLoad), "")
	pl := &preloaded{
		fileSet:    source.NewFileSetWithBase(dir),
		files:      files,
		ids:        make([]source.FileID, len(files)),
		loadErrors: make(map[int]error),
	}
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := pl.fileSet.Load(path)
		if err != nil {
			pl.loadErrors[i] = err
			id = pl.fileSet.AddVirtual(path, nil)
		}
		pl.ids[i] = id
	}
	done(fmt.Sprintf("%d files, %d failed", len(files), len(pl.loadErrors)))
	return pl
}

func (pl *preloaded) loadFailure(i int, bag *diag.Bag, opts Options) error {
	err, failed := pl.loadErrors[i]
	if !failed {
		return nil
	}
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, pl.ids[i], source.Span{},
		"failed to load file: "+err.Error()).Emit()
	emit(opts.Progress, Event{File: pl.files[i], Stage: StageLoad, Status: StatusError, Err: err})
	return err
}

func workers(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// TokenizeDir lexes every source under dir on a bounded worker pool.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	ctx, span := trace.StartSpan(opts.withTracer(ctx), trace.ScopeDriver, "tokenize-dir")
	span.SetInt("files", len(files))
	defer span.End("")

	pl := preload(dir, files, opts)

	// каждая горутина пишет только в свой слот
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			bag := diag.NewBag(opts.MaxDiagnostics)
			results[i] = TokenizeDirResult{Path: path, FileID: pl.ids[i], Bag: bag}
			if err := pl.loadFailure(i, bag, opts); err != nil {
				results[i].Err = err
				return nil
			}

			fctx, fileSpan := trace.StartSpan(gctx, trace.ScopeFile, path)
			tokens, lexErr := lexFile(fctx, pl.fileSet.Get(pl.ids[i]), bag, opts)
			if lexErr != nil {
				fileSpan.Fail(lexErr)
			} else {
				emit(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusDone, Elapsed: time.Since(start)})
			}
			fileSpan.End("")
			results[i].Tokens = tokens
			results[i].Err = lexErr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.Fail(err)
		return pl.fileSet, results, err
	}
	return pl.fileSet, results, nil
}

// ParseDir parses every source under dir; results keep ListFiles order.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	ctx, span := trace.StartSpan(opts.withTracer(ctx), trace.ScopeDriver, "parse-dir")
	span.SetInt("files", len(files))
	defer span.End("")

	pl := preload(dir, files, opts)
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			f := pl.fileSet.Get(pl.ids[i])

			var res *ParseResult
			bag := diag.NewBag(opts.MaxDiagnostics)
			if err := pl.loadFailure(i, bag, opts); err != nil {
				res = &ParseResult{File: f, Bag: bag, Err: err}
			} else {
				fctx, fileSpan := trace.StartSpan(gctx, trace.ScopeFile, path)
				res = parseFile(fctx, f, opts)
				if res.Err != nil {
					fileSpan.Fail(res.Err)
				} else {
					emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusDone, Elapsed: time.Since(start)})
				}
				fileSpan.End("")
			}
			res.FileSet = pl.fileSet
			results[i] = ParseDirResult{Path: path, FileID: pl.ids[i], ParseResult: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.Fail(err)
		return pl.fileSet, results, err
	}
	return pl.fileSet, results, nil
}

// MergeBags collects per-file diagnostics into one sorted bag without repeats.
func MergeBags(limit int, bags ...*diag.Bag) *diag.Bag {
	out := diag.NewBag(limit)
	for _, b := range bags {
		if b != nil {
			out.Merge(b)
		}
	}
	out.Sort()
	out.Dedup()
	return out
}
