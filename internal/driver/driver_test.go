package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nx/internal/ast"
	"nx/internal/diag"
	"nx/internal/parser"
	"nx/internal/source"
	"nx/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func tokenKinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func nodeKinds(nodes []ast.Node) []ast.Kind {
	out := make([]ast.Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

var mainKinds = []ast.Kind{
	ast.StartFunction, ast.Invisible, ast.Identifier,
	ast.PendingParams, ast.PendingReturnType, ast.PendingBody,
	ast.EndFunction,
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordSink) count(stage Stage, status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.Stage == stage && e.Status == status {
			n++
		}
	}
	return n
}

func TestTokenizeFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.nx", "fn main() { }")

	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("unexpected lex error: %v", res.Err)
	}
	want := []token.Kind{token.Fn, token.IdxVal, token.LParenthesis, token.RParenthesis, token.LBrace, token.RBrace}
	if diff := cmp.Diff(want, tokenKinds(res.Tokens)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", res.Bag.Len())
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.nx"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestTokenizeEmptyFileReportsDiagnostic(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.nx", "")

	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Err == nil || !res.Bag.HasErrors() {
		t.Fatalf("expected lex error, got %v", res.Err)
	}
	if got := res.Bag.Items()[0].Code; got != diag.LexEmptyInput {
		t.Fatalf("code = %s, want %s", got.ID(), diag.LexEmptyInput.ID())
	}
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.nx", "// entry\npub fn main() { }\n")

	res, err := Parse(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Cached {
		t.Fatalf("no cache configured, result must not be cached")
	}
	if diff := cmp.Diff(mainKinds, nodeKinds(res.Nodes)); diff != "" {
		t.Fatalf("node kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStdin(t *testing.T) {
	opts := Options{Stdin: strings.NewReader("pub fn main() { }\r\n")}
	res, err := Parse(context.Background(), StdinPath, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.File.Path != "<stdin>" {
		t.Fatalf("path = %q", res.File.Path)
	}
	if res.File.Flags&source.FileNormalizedCRLF == 0 {
		t.Fatalf("CRLF must be normalized for stdin too")
	}
	if diff := cmp.Diff(mainKinds, nodeKinds(res.Nodes)); diff != "" {
		t.Fatalf("node kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.nx", "fn 1")

	res, err := Parse(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !errors.Is(res.Err, parser.ErrExpectedIdentifier) {
		t.Fatalf("expected ErrExpectedIdentifier, got %v", res.Err)
	}
	if res.Nodes != nil {
		t.Fatalf("no partial result expected, got %d nodes", len(res.Nodes))
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("error must be reported into the bag")
	}
}

func TestParseWarnSkipped(t *testing.T) {
	path := writeFile(t, t.TempDir(), "skip.nx", "let fn main")

	res, err := Parse(context.Background(), path, Options{WarnSkipped: true})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.Bag.HasWarnings() || res.Bag.HasErrors() {
		t.Fatalf("expected warnings only, got %v", res.Bag.Items())
	}
}

func TestParseUsesDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	path := writeFile(t, t.TempDir(), "main.nx", "fn main() {}\nfn helper() {}\n")
	opts := Options{Cache: cache}

	first, err := Parse(context.Background(), path, opts)
	if err != nil || first.Err != nil {
		t.Fatalf("first parse: %v / %v", err, first.Err)
	}
	if first.Cached {
		t.Fatalf("first parse cannot be a cache hit")
	}

	second, err := Parse(context.Background(), path, opts)
	if err != nil || second.Err != nil {
		t.Fatalf("second parse: %v / %v", err, second.Err)
	}
	if !second.Cached {
		t.Fatalf("second parse should come from the cache")
	}
	if second.Tokens != nil {
		t.Fatalf("cached result carries no tokens")
	}
	if diff := cmp.Diff(first.Nodes, second.Nodes); diff != "" {
		t.Fatalf("cached nodes differ (-first +second):\n%s", diff)
	}

	// другие настройки лексера дают другой ключ
	third, err := Parse(context.Background(), path, Options{Cache: cache, TokensPerLine: 7})
	if err != nil || third.Cached {
		t.Fatalf("different settings must miss the cache: %v cached=%v", err, third.Cached)
	}
	limited, err := Parse(context.Background(), path, Options{Cache: cache, MaxDiagnostics: 1})
	if err != nil || limited.Cached {
		t.Fatalf("a different diagnostic limit must miss the cache: %v cached=%v", err, limited.Cached)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	fourth, err := Parse(context.Background(), path, opts)
	if err != nil || fourth.Cached {
		t.Fatalf("dropped cache must miss: %v cached=%v", err, fourth.Cached)
	}
}

func TestCachedPayloadRejectsOtherSource(t *testing.T) {
	fs := source.NewFileSet()
	orig := fs.Get(fs.AddVirtual("a.nx", []byte("fn main")))
	other := fs.Get(fs.AddVirtual("b.nx", []byte("fn mAin")))
	short := fs.Get(fs.AddVirtual("c.nx", []byte("fn")))

	nodes := []ast.Node{
		ast.NewNode(ast.StartFunction, source.Span{Start: 0, End: 2}),
		ast.NewNode(ast.Invisible, source.Span{Start: 0, End: 2}),
		ast.NewNode(ast.Identifier, source.Span{Start: 3, End: 7}),
		ast.NewNode(ast.PendingParams, source.Span{Start: 7, End: 7}),
		ast.NewNode(ast.PendingReturnType, source.Span{Start: 7, End: 7}),
		ast.NewNode(ast.PendingBody, source.Span{Start: 7, End: 7}),
		ast.NewNode(ast.EndFunction, source.Span{Start: 0, End: 7}),
	}
	payload := nodesToPayload(orig, nodes, nil)

	got, _, ok := payloadToNodes(payload, orig)
	if !ok {
		t.Fatalf("payload should decode against its own source")
	}
	if diff := cmp.Diff(nodes, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if _, _, ok := payloadToNodes(payload, other); ok {
		t.Fatalf("payload must not decode against a different lexeme")
	}
	if _, _, ok := payloadToNodes(payload, short); ok {
		t.Fatalf("payload must not decode with spans past the end")
	}

	payload.Schema++
	if _, _, ok := payloadToNodes(payload, orig); ok {
		t.Fatalf("payload with another schema must be rejected")
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.nx", "fn 1")
	writeFile(t, dir, "a.nx", "fn main() {}")
	writeFile(t, dir, "sub/c.nx", "pub fn helper")
	writeFile(t, dir, "notes.txt", "not nx")

	sink := &recordSink{}
	fileSet, results, err := ParseDir(context.Background(), dir, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if fileSet.Len() != 3 {
		t.Fatalf("expected 3 files loaded, got %d", fileSet.Len())
	}

	wantPaths := []string{
		filepath.Join(dir, "a.nx"),
		filepath.Join(dir, "b.nx"),
		filepath.Join(dir, "sub", "c.nx"),
	}
	gotPaths := make([]string, len(results))
	for i, r := range results {
		gotPaths[i] = r.Path
	}
	if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	if results[0].Err != nil || len(ast.Functions(results[0].Nodes)) != 1 {
		t.Fatalf("a.nx: err=%v nodes=%v", results[0].Err, results[0].Nodes)
	}
	if !errors.Is(results[1].Err, parser.ErrExpectedIdentifier) {
		t.Fatalf("b.nx: expected ErrExpectedIdentifier, got %v", results[1].Err)
	}
	if results[2].Err != nil || len(results[2].Nodes) != len(mainKinds) {
		t.Fatalf("sub/c.nx: err=%v nodes=%d", results[2].Err, len(results[2].Nodes))
	}

	if got := sink.count(StageLoad, StatusQueued); got != 3 {
		t.Fatalf("queued events = %d, want 3", got)
	}
	if got := sink.count(StageParse, StatusDone); got != 2 {
		t.Fatalf("parse done events = %d, want 2", got)
	}
	if got := sink.count(StageParse, StatusError); got != 1 {
		t.Fatalf("parse error events = %d, want 1", got)
	}

	bags := make([]*diag.Bag, len(results))
	for i, r := range results {
		bags[i] = r.Bag
	}
	merged := MergeBags(0, bags...)
	if merged.Len() != 1 || merged.Items()[0].Code != diag.SynExpectIdentifier {
		t.Fatalf("merged diagnostics: %v", merged.Items())
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.nx", "let x")
	writeFile(t, dir, "b.nx", "")

	_, results, err := TokenizeDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if diff := cmp.Diff([]token.Kind{token.Let, token.IdxVal}, tokenKinds(results[0].Tokens)); diff != "" {
		t.Fatalf("a.nx kinds mismatch (-want +got):\n%s", diff)
	}
	if results[1].Err == nil || !results[1].Bag.HasErrors() {
		t.Fatalf("empty file should fail to tokenize")
	}
}

func TestDirModeEmptyDirectory(t *testing.T) {
	fileSet, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if fileSet == nil || len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}

func TestParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.nx", "fn main")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ParseDir(ctx, dir, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
