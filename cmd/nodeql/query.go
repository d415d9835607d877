package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/nodeql/expr"
	"github.com/aledsdavies/nodeql/parser"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <file> <expression>",
		Short: "Evaluate a path expression against a document's root",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.OutOrStdout(), args[0], args[1])
		},
	}
	return cmd
}

func runQuery(w interface {
	Write([]byte) (int, error)
}, file, exprSrc string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	root, err := parser.ParseString(string(data))
	if err != nil {
		return err
	}
	e, err := expr.Parse(exprSrc, expr.Global())
	if err != nil {
		return err
	}
	for _, n := range e.EvaluateDocument(root) {
		if n.HasValue {
			fmt.Fprintf(w, "%s: (%s) %v\n", n.Name, n.Value.Kind, n.Value)
		} else {
			fmt.Fprintln(w, n.Name)
		}
	}
	return nil
}
