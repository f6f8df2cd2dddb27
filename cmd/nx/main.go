package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nx/internal/prof"
	"nx/internal/version"
)

// errDiagnostics signals that diagnostics with errors were already printed.
var errDiagnostics = errors.New("errors reported")

// newRootCmd builds the command tree; tests get a fresh copy each time.
// finish flushes the tracer and must run after Execute, including on error:
// cobra skips post-run hooks when RunE fails.
func newRootCmd() (root *cobra.Command, finish func(failed bool)) {
	var cleanup func(failed bool)
	var profiles *prof.Session

	root = &cobra.Command{
		Use:           "nx",
		Short:         "nx language front-end",
		Long:          `nx tokenizes and parses nx source files and prints tokens, nodes and diagnostics`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if profiles, err = setupProfiling(cmd); err != nil {
				return err
			}
			cleanup, err = setupTracing(cmd)
			return err
		},
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	flags.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring)")
	flags.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	finish = func(failed bool) {
		if cleanup != nil {
			cleanup(failed)
			cleanup = nil
		}
		if err := profiles.Stop(); err != nil {
			fmt.Fprintf(root.ErrOrStderr(), "profile: %v\n", err)
		}
	}
	return root, finish
}

func main() {
	root, finish := newRootCmd()
	err := root.Execute()
	finish(err != nil)
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "nx: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
