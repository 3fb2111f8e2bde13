package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/richedit/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-export a document as platform JSON whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			export := func(_ context.Context, path string) error {
				doc, err := a.loadDocument(path)
				if err != nil {
					return err
				}
				if outPath == "" {
					return writeJSON(cmd.OutOrStdout(), doc)
				}
				return writeFile(outPath, func(w io.Writer) error { return writeJSON(w, doc) })
			}

			if err := export(cmd.Context(), args[0]); err != nil {
				return err
			}
			w := watcher.New(args[0], watcher.WithLogger(a.logger))
			a.logger.Info("watching", "path", w.Path(), "out", outPath)
			return w.Run(cmd.Context(), export)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write JSON to this file instead of stdout")
	return cmd
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, fn func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
