// Package cli implements the jvmkit command-line tool: a cobra command
// tree wrapping pkg/loader, pkg/classfile, and pkg/analyzer for interactive
// or scripted use.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	formatFlag string
	verbose    bool
)

// Execute runs the jvmkit root command, returning the error a caller (i.e.
// main) should report and exit non-zero on.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jvmkit",
		Short:         "Decode JVM class files and lift their bytecode to IR",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&formatFlag, "format", "", "output format: text or json (overrides config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newDecodeCmd())
	root.AddCommand(newAnalyzeCmd())
	return root
}

// resolveConfig loads the TOML file (if any) and overlays flags explicitly
// set on cmd, so that command-line flags always win over the file.
func resolveConfig(cmd *cobra.Command) (Config, *zap.Logger, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return Config{}, nil, err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = formatFlag
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		return Config{}, nil, fmt.Errorf("cli: unknown format %q (want \"text\" or \"json\")", cfg.Format)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return Config{}, nil, fmt.Errorf("cli: building logger: %w", err)
	}
	return cfg, logger, nil
}
