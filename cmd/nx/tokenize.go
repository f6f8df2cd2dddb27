package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nx/internal/diag"
	"nx/internal/diagfmt"
	"nx/internal/driver"
	"nx/internal/source"
	"nx/internal/token"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.nx|directory|->",
		Short: "Tokenize an nx source file or directory",
		Long:  `Tokenize breaks an nx source file, or every *.nx file in a directory, into tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func writeTokens(w io.Writer, format string, tokens []token.Token, f *source.File) error {
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(w, tokens, f)
	case "json":
		return diagfmt.FormatTokensJSON(w, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	isDir, err := isDirTarget(path)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, path)
	if err != nil {
		return err
	}
	opts := s.driverOptions()
	opts.Jobs = jobs
	opts.Stdin = cmd.InOrStdin()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if !isDir {
		res, err := driver.Tokenize(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if err := s.printDiagnostics(errOut, res.Bag, res.FileSet); err != nil {
			return err
		}
		if res.Err == nil {
			if err := writeTokens(out, format, res.Tokens, res.File); err != nil {
				return err
			}
		}
		s.printTimings(errOut, opts.Timer)
		if res.Err != nil || res.Bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	}

	fileSet, results, err := driver.TokenizeDir(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	bags := make([]*diag.Bag, len(results))
	for i, r := range results {
		bags[i] = r.Bag
	}
	merged := driver.MergeBags(0, bags...)
	if err := s.printDiagnostics(errOut, merged, fileSet); err != nil {
		return err
	}
	failed := merged.HasErrors()
	for _, r := range results {
		if r.Err != nil {
			failed = true
			continue
		}
		f := fileSet.Get(r.FileID)
		if !s.quiet && format == "pretty" {
			fmt.Fprintf(out, "== %s ==\n", f.FormatPath("auto", fileSet.BaseDir()))
		}
		if err := writeTokens(out, format, r.Tokens, f); err != nil {
			return err
		}
	}
	s.printTimings(errOut, opts.Timer)
	if failed {
		return errDiagnostics
	}
	return nil
}
