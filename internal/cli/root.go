// Package cli wires the binpat command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"binpat/internal/logging"
)

type app struct {
	log      zerolog.Logger
	logLevel string
}

// New builds the root command.
func New() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "binpat",
		Short:         "Byte-pattern scanner for binary images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logging.New(logging.Config{
				Level:  a.logLevel,
				Pretty: true,
				Output: os.Stderr,
			})
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(a.scanCmd())
	root.AddCommand(a.scanFileCmd())
	root.AddCommand(a.attachCmd())

	return root
}
