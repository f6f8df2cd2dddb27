package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns the sources of one driver run. It is not safe for concurrent
// Add: the directory driver registers every file before fanning out, after
// which Get and Resolve may be called from any goroutine.
type FileSet struct {
	files   []File
	baseDir string // для относительных путей в выводе; "" = рабочая директория
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// NewFileSetWithBase creates a FileSet whose paths are shown relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Add registers already normalized content under path and returns its new ID.
// Registering the same path twice yields two files; the older stays valid.
// Content that a uint32 Span cannot address panics.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if uint64(len(content)) > math.MaxUint32 {
		panic(fmt.Errorf("file %s: content of %d bytes exceeds span range", path, len(content)))
	}
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	text := string(content)
	fileSet.files = append(fileSet.files, File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: text,
		LineIdx: buildLineIndex(text),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(n)
}

// Load reads path from disk, normalizes BOM and CRLF, and registers it.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the user
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return fileSet.read(path, f, 0)
}

// LoadFrom reads all of r as a virtual file named name ("<stdin>" for the CLI).
// The content is normalized the way Load does it.
func (fileSet *FileSet) LoadFrom(name string, r io.Reader) (FileID, error) {
	return fileSet.read(name, r, FileVirtual)
}

func (fileSet *FileSet) read(name string, r io.Reader, flags FileFlags) (FileID, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	content, normFlags := normalize(raw)
	return fileSet.Add(name, content, flags|normFlags), nil
}

// AddVirtual registers in-memory content as is.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file with the given ID, or nil.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve maps a span of file id to line/column positions; unknown IDs give zero values.
func (fileSet *FileSet) Resolve(id FileID, span Span) (start, end LineCol) {
	if f := fileSet.Get(id); f != nil {
		return f.Resolve(span)
	}
	return LineCol{}, LineCol{}
}

// Resolve maps a span to line/column positions.
func (f *File) Resolve(span Span) (start, end LineCol) {
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns line n (1-based) without its newline, or "" past the end.
func (f *File) GetLine(n uint32) string {
	lines := uint32(len(f.LineIdx)) + 1 // #nosec G115 -- ограничено размером файла в Add
	if n == 0 || n > lines {
		return ""
	}
	var start uint32
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115 -- ограничено в Add
	if n <= uint32(len(f.LineIdx)) { // #nosec G115 -- то же
		end = f.LineIdx[n-1]
	}
	return f.Content[start:end]
}

// FormatPath renders the path for output. mode is one of "absolute",
// "relative" (to baseDir), "basename" or "auto": long absolute paths are
// shortened to their base name, everything else is kept as is.
func (f *File) FormatPath(mode, baseDir string) string {
	if strings.HasPrefix(f.Path, "<") {
		// псевдоимя вроде <stdin>
		return f.Path
	}
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir = "."
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
		return f.Path
	default:
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
