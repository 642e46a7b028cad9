package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rsl/internal/diag"
	"rsl/internal/diagfmt"
	"rsl/internal/driver"
	"rsl/internal/observ"
)

var errDiagnosticsFailed = errors.New("diagnostics reported errors")

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.mac|directory>...",
	Short: "Report diagnostics for RSL source files",
	Long:  `Parse files (every RSL file of a directory) with their imports and print what the language server would publish`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diagCmd.Flags().Bool("no-hints", false, "drop hint-level diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Int("context", 0, "lines of source context around each diagnostic")
}

// runDiagnose prints diagnostics and fails when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noHints, err := cmd.Flags().GetBool("no-hints")
	if err != nil {
		return fmt.Errorf("failed to get no-hints flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cmd, cfg)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	var files []string
	if err := timer.Track("discover", func() (string, error) {
		var derr error
		files, derr = expandArgs(cmd.Context(), args, cfg.Imports.Extensions)
		return fmt.Sprintf("%d files", len(files)), derr
	}); err != nil {
		return err
	}

	var sess *driver.Session
	loadErr := timer.Track("load", func() (string, error) {
		var lerr error
		sess, lerr = driver.Load(files, opts)
		return "", lerr
	})
	if sess == nil {
		return loadErr
	}
	if loadErr != nil {
		log.Warn().Err(loadErr).Msg("some files were not loaded")
	}

	bag := sess.Bag(opts.MaxDiagnostics)
	if noHints {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevHint })
	}
	bag.Dedup()
	bag.Sort()

	mode, base := pathMode(fullPath)
	fs := sess.Engine.Files()
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   contextLines,
			PathMode:  mode,
			BaseDir:   base,
			ShowNotes: withNotes,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         mode,
			BaseDir:          base,
			IncludeNotes:     withNotes,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if bag.HasErrors() || (warningsAsErrors && bag.HasWarnings()) {
		return errDiagnosticsFailed
	}
	return nil
}

// expandArgs replaces directories with the RSL files under them.
func expandArgs(ctx context.Context, args, extensions []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := driver.Discover(arg, extensions)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, errors.New("no RSL files found")
	}
	return files, nil
}
