package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"nx/internal/lexer"
)

var ErrManifestExists = errors.New("nx.toml already exists")

// Manifest is a loaded nx.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package     PackageConfig     `toml:"package"`
	Lexer       LexerConfig       `toml:"lexer"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// LexerConfig tunes the token buffer guess; zero means the lexer default.
type LexerConfig struct {
	TokensPerLine int `toml:"tokens_per_line"`
	CapFactor     int `toml:"cap_factor"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

// Default returns the config written by `nx init`.
func Default(name string) Config {
	return Config{
		Package:     PackageConfig{Name: name},
		Lexer:       LexerConfig{TokensPerLine: lexer.DefaultTokensPerLine, CapFactor: lexer.DefaultCapFactor},
		Diagnostics: DiagnosticsConfig{Max: 100},
	}
}

// LoadConfig reads and validates one nx.toml.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Lexer.TokensPerLine < 0 || cfg.Lexer.CapFactor < 0 {
		return Config{}, fmt.Errorf("%s: [lexer] values must not be negative", path)
	}
	if cfg.Lexer.TokensPerLine > lexer.MaxTokensPerLine {
		return Config{}, fmt.Errorf("%s: [lexer].tokens_per_line must be at most %d", path, lexer.MaxTokensPerLine)
	}
	if cfg.Lexer.CapFactor > lexer.MaxCapFactor {
		return Config{}, fmt.Errorf("%s: [lexer].cap_factor must be at most %d", path, lexer.MaxCapFactor)
	}
	if cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	return cfg, nil
}

// Load finds nx.toml starting at startDir and loads it.
// ok is false when no manifest exists; that is not an error.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// Write creates dir/nx.toml from cfg. An existing manifest is never overwritten.
func Write(dir string, cfg Config) (string, error) {
	path := filepath.Join(dir, ManifestName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrManifestExists)
		}
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
