package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmartell/logconf/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "logconf",
		Short:         "Inspect and exercise logging configuration files",
		Long:          "logconf validates logging configuration files (INI or YAML),\nlists the loggers they define, and emits test records through them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newValidateCmd(), newLoggersCmd(), newEmitCmd())
	return cmd
}

// loadConfig picks the loader by file extension: .yaml/.yml documents
// use the dictConfig-style loader, everything else is read as INI.
func loadConfig(path string) (*config.Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.LoadYAMLFile(path)
	default:
		return config.LoadFile(path)
	}
}
