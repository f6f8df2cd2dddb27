package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nx/internal/diag"
	"nx/internal/diagfmt"
	"nx/internal/driver"
	"nx/internal/observ"
	"nx/internal/project"
	"nx/internal/source"
)

// settings: итоговая конфигурация команды: nx.toml, поверх него флаги.
type settings struct {
	maxDiagnostics int
	tokensPerLine  int
	capFactor      int
	color          bool
	quiet          bool
	timings        bool
	diagFormat     string
	manifest       *project.Manifest
}

func resolveSettings(cmd *cobra.Command, target string) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	var s settings

	if target == driver.StdinPath {
		target = "."
	}
	manifest, ok, err := project.Load(target)
	if err != nil {
		return s, err
	}
	if ok {
		s.manifest = manifest
		s.tokensPerLine = manifest.Config.Lexer.TokensPerLine
		s.capFactor = manifest.Config.Lexer.CapFactor
		s.maxDiagnostics = manifest.Config.Diagnostics.Max
	}

	if !ok || flags.Changed("max-diagnostics") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if s.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return s, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch s.diagFormat {
	case "pretty", "short", "json":
	default:
		return s, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", s.diagFormat)
	}
	return s, nil
}

func (s settings) driverOptions() driver.Options {
	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		TokensPerLine:  s.tokensPerLine,
		CapFactor:      s.capFactor,
	}
	if s.timings {
		opts.Timer = observ.NewTimer()
	}
	return opts
}

// printDiagnostics пишет диагностики в выбранном формате; пустой bag ничего не печатает.
func (s settings) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	var err error
	switch s.diagFormat {
	case "short":
		_, err = io.WriteString(w, diag.FormatShort(bag.Items(), fs, true))
	case "json":
		// в JSON отброшенные видны как "truncated"
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	default:
		err = diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
	}
	if err == nil && bag.Dropped() > 0 {
		_, err = fmt.Fprintf(w, "note: %d more diagnostic(s) over the --max-diagnostics limit\n", bag.Dropped())
	}
	return err
}

func (s settings) printTimings(w io.Writer, timer *observ.Timer) {
	if !s.timings || timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}

// isDirTarget сообщает, нужно ли обрабатывать target как директорию; "-" означает stdin.
func isDirTarget(target string) (bool, error) {
	if target == driver.StdinPath {
		return false, nil
	}
	st, err := os.Stat(target)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return st.IsDir(), nil
}
