package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/richedit/internal/history"
	"github.com/dshills/richedit/internal/richtext"
	"github.com/dshills/richedit/internal/script"
	"github.com/dshills/richedit/internal/session"
	"github.com/dshills/richedit/internal/toggle"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Print the style runs of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc.Dump())
			return err
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export a document as platform JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	var (
		axisName  string
		rangeSpec string
	)
	cmd := &cobra.Command{
		Use:   "toggle FILE",
		Short: "Toggle a character style over a range",
		Long:  "Toggle bold, italic, underline, strikethrough, subscript or superscript over a grapheme range and print platform JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := toggle.ParseAxis(axisName)
			if err != nil {
				return err
			}
			doc, err := a.loadDocument(args[0])
			if err != nil {
				return err
			}
			sel := richtext.NewRange(0, doc.Len())
			if rangeSpec != "" {
				if sel, err = richtext.ParseRange(rangeSpec); err != nil {
					return err
				}
			}
			out, err := a.engine().Toggle(doc, sel, axis)
			if err != nil {
				return err
			}
			a.logger.Info("toggled", "axis", axis.String(), "range", sel.String(), "runs", out.RunCount())
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&axisName, "axis", "a", "bold", "Style to toggle ("+axisList()+")")
	cmd.Flags().StringVarP(&rangeSpec, "range", "r", "", "Grapheme range START:END (default whole document)")
	return cmd
}

func axisList() string {
	names := make([]string, 0, 6)
	for _, axis := range toggle.Axes() {
		names = append(names, axis.String())
	}
	return strings.Join(names, ", ")
}

func newScriptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "script FILE SCRIPT.lua",
		Short: "Run a Lua edit script over a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0])
			if err != nil {
				return err
			}
			code, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			sess := session.New(doc,
				session.WithEngine(a.engine()),
				session.WithHistory(history.New(a.cfg.History().MaxEntries)),
				session.WithLogger(a.logger),
			)
			runner := script.NewRunner(
				script.WithTimeout(a.cfg.Script().Timeout),
				script.WithOutput(cmd.ErrOrStderr()),
				script.WithLogger(a.logger),
			)
			if err := runner.Run(cmd.Context(), sess, string(code)); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sess.Document())
		},
	}
}
