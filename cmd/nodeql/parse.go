package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/nodeql/internal/canonhash"
	"github.com/aledsdavies/nodeql/parser"
	"github.com/aledsdavies/nodeql/tree"
)

func newParseCmd() *cobra.Command {
	var showHash bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an indented-tree document and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			root, err := parser.ParseString(string(data))
			if err != nil {
				return err
			}
			dumpNode(cmd.OutOrStdout(), root, 0)
			if showHash {
				h, err := canonhash.HashHex(root)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHash, "hash", false, "print the structural hash of the parsed tree")
	return cmd
}

func dumpNode(w io.Writer, n *tree.Node, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	if n.HasValue {
		fmt.Fprintf(w, "%s: (%s) %v\n", n.Name, n.Value.Kind, n.Value)
	} else {
		fmt.Fprintf(w, "%s\n", n.Name)
	}
	for _, c := range n.Children {
		dumpNode(w, c, depth+1)
	}
}
