// Package cli implements the pkgwalk command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pkgwalk/pkgwalk/internal/config"
	"github.com/pkgwalk/pkgwalk/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the pkgwalk CLI.
// It loads the optional config file, attaches a configured logger to the
// command context, and registers subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		cfgPath  string
		logLevel string
	)
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           "pkgwalk",
		Short:         "List packages installed alongside a module",
		Long:          "pkgwalk walks the installed-package layout on disk and reports what is actually installed, without parsing dependency manifests.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			level := cfg.Logging.Level
			if logLevel != "" {
				level = logLevel
			}
			format := cfg.Logging.Format
			if format == "console" && !isTerminal(os.Stderr) {
				format = "json"
			}

			logger, err := logging.New(logging.Config{Level: level, Format: format})
			if err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}
			cmd.SetContext(logging.WithContext(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Path to config file (default "+config.DefaultFile+" in the working directory)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newListCmd(cfg))

	return cmd
}
