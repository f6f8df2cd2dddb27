package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"nx/internal/ast"
	"nx/internal/diag"
	"nx/internal/diagfmt"
	"nx/internal/driver"
	"nx/internal/source"
	"nx/internal/ui"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.nx|directory|->",
		Short: "Parse an nx source file or directory and print its nodes",
		Long:  `Parse analyzes an nx source file, or every *.nx file in a directory, and prints the flat node sequence`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|tree|repr)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "off", "show progress for directories (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse parse results from the disk cache")
	cmd.Flags().Bool("warn-skipped", false, "warn about tokens skipped at top level")
	return cmd
}

func writeNodes(w io.Writer, format string, nodes []ast.Node, f *source.File) error {
	switch format {
	case "pretty":
		return diagfmt.FormatNodesPretty(w, nodes, f.Content, f)
	case "json":
		return diagfmt.FormatNodesJSON(w, nodes, f.Content, f.Path)
	case "tree":
		return diagfmt.FormatNodesTree(w, nodes, f.Content, f)
	case "repr":
		return diagfmt.FormatNodesRepr(w, nodes)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	flags := cmd.Flags()

	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "tree", "repr":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	warnSkipped, err := flags.GetBool("warn-skipped")
	if err != nil {
		return fmt.Errorf("failed to get warn-skipped flag: %w", err)
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
	opts.WarnSkipped = warnSkipped
	if useCache {
		if opts.Cache, err = driver.OpenDiskCache("nx"); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if !isDir {
		res, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := s.printDiagnostics(errOut, res.Bag, res.FileSet); err != nil {
			return err
		}
		if res.Err == nil {
			if err := writeNodes(out, format, res.Nodes, res.File); err != nil {
				return err
			}
		}
		s.printTimings(errOut, opts.Timer)
		if res.Err != nil || res.Bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	}

	fileSet, results, err := parseDirWithProgress(cmd.Context(), path, opts, mode, errOut)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
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
		if !s.quiet && format != "json" {
			fmt.Fprintf(out, "== %s ==\n", r.File.FormatPath("auto", fileSet.BaseDir()))
		}
		if err := writeNodes(out, format, r.Nodes, r.File); err != nil {
			return err
		}
	}
	s.printTimings(errOut, opts.Timer)
	if failed {
		return errDiagnostics
	}
	return nil
}

// parseDirWithProgress runs ParseDir, showing the bubbletea progress view when enabled.
func parseDirWithProgress(ctx context.Context, dir string, opts driver.Options, mode uiMode, out io.Writer) (*source.FileSet, []driver.ParseDirResult, error) {
	if !shouldUseTUI(mode) {
		return driver.ParseDir(ctx, dir, opts)
	}
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 64)
	opts.Progress = driver.ChannelSink{Ch: events}

	var wg sync.WaitGroup
	var uiErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		uiErr = ui.Run(out, "parse", files, events)
		// UI мог завершиться раньше; не блокируем воркеры
		for range events {
		}
	}()

	fileSet, results, err := driver.ParseDir(ctx, dir, opts)
	close(events)
	wg.Wait()
	if err == nil && uiErr != nil {
		err = fmt.Errorf("progress ui: %w", uiErr)
	}
	return fileSet, results, err
}
