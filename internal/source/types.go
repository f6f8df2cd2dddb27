package source

// FileID indexes a File inside its FileSet, in order of registration.
type FileID uint32

// FileFlags records how a file's content was obtained and normalized.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // not read from disk: tests, stdin, load failures
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // \r\n pairs were rewritten to \n
)

// File is one registered source. Content never changes after registration:
// token texts are substrings of it and spans index into it.
type File struct {
	ID      FileID
	Path    string
	Content string
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
