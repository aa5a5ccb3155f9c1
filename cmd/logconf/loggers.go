package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pmartell/logconf/config"
	"github.com/pmartell/logconf/logger"
)

func newLoggersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loggers FILE",
		Short: "List configured loggers with their effective levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.BuildFile(args[0])
			if err != nil {
				return err
			}
			defer reg.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printLogger(w, reg.Root())
			for _, name := range reg.Names() {
				printLogger(w, reg.Get(name))
			}
			return w.Flush()
		},
	}
}

func printLogger(w *tabwriter.Writer, l *logger.Logger) {
	name := l.Name()
	if name == "" {
		name = logger.RootName
	}
	fmt.Fprintf(w, "%s\t%s\n", name, l.Level())
}
