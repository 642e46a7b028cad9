package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rsl/internal/diagfmt"
	"rsl/internal/driver"
	"rsl/internal/observ"
	"rsl/internal/ui"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] [directory]",
	Short: "Index every RSL file of a workspace",
	Long:  `Index parses every RSL file under a directory in parallel and prints a per-file summary; results are cached on disk by content`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	indexCmd.Flags().String("ui", "auto", "show progress UI (auto|on|off)")
	indexCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	indexCmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	indexCmd.Flags().Bool("clear-cache", false, "drop the disk cache before indexing")
}

func runIndex(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engOpts, err := engineOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts := driver.IndexOptions{
		Engine:     engOpts,
		Extensions: cfg.Imports.Extensions,
		Jobs:       jobs,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("rsl")
		if err != nil {
			log.Warn().Err(err).Msg("disk cache unavailable")
		} else {
			if clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}
			opts.Cache = cache
		}
	}

	var res *driver.IndexResult
	if !quiet && format == "pretty" && shouldUseTUI(mode) {
		res, err = runIndexWithUI(cmd.Context(), root, opts)
	} else {
		res, err = driver.IndexDir(cmd.Context(), root, opts)
	}
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		if !quiet {
			if err := diagfmt.FormatIndexPretty(os.Stdout, res); err != nil {
				return err
			}
		}
	case "json":
		if err := diagfmt.FormatIndexJSON(os.Stdout, res); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if showTimings && res.Timer != nil {
		fmt.Fprint(os.Stderr, res.Timer.Summary())
	}
	return nil
}

type indexOutcome struct {
	files []driver.FileSummary
	hits  int
	err   error
}

// runIndexWithUI discovers first, so the progress model knows every file,
// then indexes with events streamed into the Bubble Tea program.
func runIndexWithUI(ctx context.Context, root string, opts driver.IndexOptions) (*driver.IndexResult, error) {
	timer := observ.NewTimer()
	idx := timer.Begin("discover")
	files, err := driver.Discover(root, opts.Extensions)
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan indexOutcome, 1)

	idx = timer.Begin("index")
	go func() {
		reqOpts := opts
		reqOpts.Progress = driver.ChannelSink(events)
		sums, hits, err := driver.IndexFiles(ctx, files, reqOpts)
		outcomeCh <- indexOutcome{files: sums, hits: hits, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("indexing "+root, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// если программа ушла раньше (ctrl+c), воркеры не должны встать на
	// полном канале: отменяем и дочитываем
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	timer.End(idx, fmt.Sprintf("%d cached", outcome.hits))
	if outcome.err != nil {
		return nil, outcome.err
	}
	if uiErr != nil {
		return nil, uiErr
	}
	return &driver.IndexResult{Root: root, Files: outcome.files, CacheHits: outcome.hits, Timer: timer}, nil
}
