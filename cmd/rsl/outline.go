package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rsl/internal/diagfmt"
	"rsl/internal/driver"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [flags] file.mac...",
	Short: "Print the declarations of RSL source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	outlineCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runOutline(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cmd, cfg)
	if err != nil {
		return err
	}

	sess, err := driver.Load(args, opts)
	if sess == nil {
		return err
	}
	if err != nil {
		log.Warn().Err(err).Msg("some files were not loaded")
	}

	mode, base := pathMode(fullPath)
	switch format {
	case "pretty":
		return diagfmt.FormatOutlinePretty(os.Stdout, sess.Files, mode, base)
	case "json":
		return diagfmt.FormatOutlineJSON(os.Stdout, sess.Files, mode, base)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func pathMode(fullPath bool) (diagfmt.PathMode, string) {
	if fullPath {
		return diagfmt.PathModeAbsolute, ""
	}
	wd, err := os.Getwd()
	if err != nil {
		return diagfmt.PathModeAbsolute, ""
	}
	return diagfmt.PathModeAuto, wd
}
