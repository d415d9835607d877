package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// newWatchCmd re-runs a query every time the source file changes,
// giving the declared-but-unused fsnotify dependency a real call site.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file> <expression>",
		Short: "Re-run a query each time the document changes on disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command, file, exprSrc string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	out := cmd.OutOrStdout()
	report := func() {
		if err := runQuery(out, file, exprSrc); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "query error: %v\n", err)
		}
	}

	report()
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				report()
			}
			if ev.Op&fsnotify.Remove != 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s removed, stopping watch\n", file)
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
