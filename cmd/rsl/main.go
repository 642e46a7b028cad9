package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rsl/internal/config"
	"rsl/internal/engine"
	"rsl/internal/logging"
	"rsl/internal/prof"
	"rsl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rsl",
	Short: "RSL language server and source tools",
	Long:  `rsl serves RSL macro sources to editors over LSP and inspects them from the command line`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return startProfiling(cmd)
	},
	SilenceUsage: true,
}

// main registers subcommands and persistent flags and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = from config)")
	rootCmd.PersistentFlags().String("config", "", "path to rsl.toml (default: searched upwards from the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "override log level (debug|info|warn|error|disabled)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("trace", "", "write a runtime trace to file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for f; nil f is not a terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && f != nil && isTerminal(f))
}

func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}

// loadConfig reads --config or discovers rsl.toml from the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), err
	}
	return config.Discover(wd)
}

// engineOptions applies the persistent flags on top of cfg.
func engineOptions(cmd *cobra.Command, cfg config.Config) (engine.Options, error) {
	opts, err := engine.OptionsFromConfig(cfg)
	if err != nil {
		return opts, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}
	return opts, nil
}

func setupLogging(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		// конфиг ещё понадобится команде, там и будет ошибка
		cfg = config.Default()
	}
	level := cfg.Log.Level
	if override, _ := cmd.Root().PersistentFlags().GetString("log-level"); override != "" {
		level = override
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); quiet && cmd.Name() != lspCmd.Name() {
		level = "error"
	}
	closer, err := logging.Setup(logging.Options{
		Level:   level,
		File:    cfg.Log.File,
		Console: cfg.Log.File == "" && isTerminal(os.Stderr),
	})
	if err != nil {
		return err
	}
	cobra.OnFinalize(func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close log file")
		}
	})
	return nil
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = flags.GetString("cpuprofile")
	opts.Mem, _ = flags.GetString("memprofile")
	opts.Trace, _ = flags.GetString("trace")
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	cobra.OnFinalize(func() {
		if err := session.Stop(); err != nil {
			log.Warn().Err(err).Msg("profiling")
		}
	})
	return nil
}
