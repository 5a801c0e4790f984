package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/dragkit/internal/present/format"
)

func newRenderCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Print the Markdown a note would contain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			content, err := readInput(cmd, src)
			if err != nil {
				return err
			}
			app := getApp(cmd)
			md, path := app.Converter.Convert(content)
			app.Log.Printf("render path=%s bytes=%d", path, len(content))

			out := cmd.OutOrStdout()
			tty, width := isTerminal(out)
			if raw || !tty || !app.Cfg.Output.Pretty {
				_, err := fmt.Fprintln(out, strings.TrimRight(md, "\n"))
				return err
			}
			return withPager(cmd.Context(), out, cmd.ErrOrStderr(), func(w io.Writer) error {
				return format.WritePrettyMarkdown(w, md, format.StyleFor(string(app.Cfg.Snapshot.Theme)), width)
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print plain Markdown even on a terminal")
	cmd.Flags().String("mode", "", "override note.html_mode (strip|convert)")
	return cmd
}
