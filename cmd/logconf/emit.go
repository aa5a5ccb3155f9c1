package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmartell/logconf/config"
	"github.com/pmartell/logconf/core"
)

func newEmitCmd() *cobra.Command {
	var (
		loggerName string
		levelName  string
	)
	cmd := &cobra.Command{
		Use:   "emit FILE MESSAGE...",
		Short: "Build the configuration and emit one record through it",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := core.ParseLevel(levelName)
			if err != nil {
				return err
			}

			reg, err := config.BuildFile(args[0])
			if err != nil {
				return err
			}

			reg.Get(loggerName).Log(level, strings.Join(args[1:], " "))
			return reg.Close()
		},
	}
	cmd.Flags().StringVar(&loggerName, "logger", "root", "logger to emit through")
	cmd.Flags().StringVar(&levelName, "level", "INFO", "record severity")
	return cmd
}
