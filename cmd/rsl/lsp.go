package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rsl/internal/driver"
	"rsl/internal/lsp"
	"rsl/internal/version"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the RSL language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Bool("preload", false, "parse the whole workspace on startup (overrides workspace.preload)")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engOpts, err := engineOptions(cmd, cfg)
	if err != nil {
		return err
	}
	preload := cfg.Workspace.Preload
	if cmd.Flags().Changed("preload") {
		preload, _ = cmd.Flags().GetBool("preload")
	}
	extensions := cfg.Imports.Extensions

	server, err := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Engine:         engOpts,
		MaxDiagnostics: engOpts.MaxDiagnostics,
		UppercaseURIs:  cfg.Workspace.UppercaseURIs,
		Preload:        preload,
		Discover: func(root string) ([]string, error) {
			return driver.Discover(root, extensions)
		},
		Version: version.Version,
		Logger:  &log.Logger,
	})
	if err != nil {
		return err
	}
	log.Info().Str("config", cfg.Path).Bool("preload", preload).Msg("language server started")
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
