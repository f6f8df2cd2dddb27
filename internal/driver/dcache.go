package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"nx/internal/ast"
	"nx/internal/diag"
	"nx/internal/lexer"
	"nx/internal/project"
	"nx/internal/source"
)

// Bump on any change to DiskPayload or CachedNode.
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps parse results between runs, one msgpack file per key under
// <dir>/parse/xx/. Entries are immutable: a key covers the file content and
// every option that changes the result, so a changed file simply misses.
type DiskCache struct {
	mu  sync.RWMutex // DropAll против чтения и записи
	dir string
}

// DiskPayload is one cached parse result.
type DiskPayload struct {
	Schema uint16
	Path   string

	// Лексемы узлов по StringID; [0] всегда ""
	Strings []string
	Nodes   []CachedNode
	Diags   []CachedDiag
}

type CachedNode struct {
	Kind  uint8
	Start uint32
	End   uint32
	Text  source.StringID
}

type CachedDiag struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
}

// userCacheRoot: $XDG_CACHE_HOME, иначе ~/.cache.
func userCacheRoot() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate cache directory: %w", err)
	}
	return filepath.Join(home, ".cache"), nil
}

// OpenDiskCache opens the cache of app inside the user cache directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	root, err := userCacheRoot()
	if err != nil {
		return nil, err
	}
	return OpenDiskCacheAt(filepath.Join(root, app))
}

// OpenDiskCacheAt uses dir as the cache root, creating it when missing.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	c := &DiskCache{dir: dir}
	if err := os.MkdirAll(c.entries(), 0o755); err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return c, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) entries() string { return filepath.Join(c.dir, "parse") }

func (c *DiskCache) entryPath(key project.Digest) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.entries(), name[:2], name+".mp")
}

// Put stores payload under key. Readers never see a partly written entry.
// A nil cache accepts and drops everything.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return writeFileAtomic(c.entryPath(key), data)
}

// writeFileAtomic пишет во временный файл рядом с path и переименовывает его.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".put-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Get fills out from the entry stored under key. A missing entry is a miss,
// not an error; an unreadable one is reported so the caller can warn.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

// DropAll removes every entry; the cache stays usable afterwards.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.entries()); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return os.MkdirAll(c.entries(), 0o755)
}

// cacheKey: содержимое файла плюс всё, что влияет на результат разбора,
// включая лимит диагностик: запись с усечённым списком не годится для другого лимита.
func cacheKey(f *source.File, opts Options) project.Digest {
	perLine, factor := lexer.Tuning(opts.TokensPerLine, opts.CapFactor)
	warn := 0
	if opts.WarnSkipped {
		warn = 1
	}
	settings := project.IntsDigest(int(diskCacheSchemaVersion), perLine, factor, warn, max(opts.MaxDiagnostics, 0))
	return project.Combine(project.Digest(f.Hash), settings)
}

func hasText(k ast.Kind) bool {
	return k == ast.Identifier || k == ast.Integer || k == ast.Float || k == ast.String
}

// nodesToPayload stores nodes by kind and span; lexemes go through an interner
// so a stale entry can be detected on load.
func nodesToPayload(f *source.File, nodes []ast.Node, diags []diag.Diagnostic) *DiskPayload {
	in := source.NewInterner()
	payload := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   f.Path,
		Nodes:  make([]CachedNode, len(nodes)),
	}
	for i, n := range nodes {
		cn := CachedNode{Kind: uint8(n.Kind), Start: n.Data.Span.Start, End: n.Data.Span.End}
		if hasText(n.Kind) {
			cn.Text = in.Intern(n.Span().Slice(f.Content))
		}
		payload.Nodes[i] = cn
	}
	payload.Strings = in.Snapshot()
	for _, d := range diags {
		payload.Diags = append(payload.Diags, CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return payload
}

// payloadToNodes rebuilds nodes for f; ok is false when the entry does not fit the file.
func payloadToNodes(p *DiskPayload, f *source.File) (nodes []ast.Node, diags []diag.Diagnostic, ok bool) {
	if p == nil || p.Schema != diskCacheSchemaVersion {
		return nil, nil, false
	}
	in, ok := source.NewInternerFrom(p.Strings)
	if !ok {
		return nil, nil, false
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return nil, nil, false
	}

	nodes = make([]ast.Node, len(p.Nodes))
	for i, cn := range p.Nodes {
		sp := source.Span{Start: cn.Start, End: cn.End}
		kind := ast.Kind(cn.Kind)
		if !kind.Valid() || sp.Start > sp.End || sp.End > size {
			return nil, nil, false
		}
		if hasText(kind) {
			text, found := in.Lookup(cn.Text)
			if !found || text != sp.Slice(f.Content) {
				return nil, nil, false
			}
		}
		nodes[i] = ast.NewNode(kind, sp)
	}
	if ast.Validate(nodes) != nil {
		return nil, nil, false
	}

	for _, cd := range p.Diags {
		diags = append(diags, diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), f.ID,
			source.Span{Start: cd.Start, End: cd.End}, cd.Message))
	}
	return nodes, diags, true
}
