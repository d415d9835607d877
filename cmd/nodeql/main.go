// Command nodeql parses, formats, and queries indented-tree documents
// from the shell (spec §6.3, §4.3). Subcommand wiring follows
// _examples/opal-lang-opal/cli/main.go's cobra root-command shape,
// reduced to this domain's concerns.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nodeql",
		Short:         "Parse, format, and query indented-tree documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newRegistryCmd())
	return root
}
