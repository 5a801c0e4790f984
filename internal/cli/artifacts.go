package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/dragkit/internal/artifact"
	"github.com/mithrel/dragkit/internal/convert"
	"github.com/mithrel/dragkit/internal/editor"
	"github.com/mithrel/dragkit/internal/util"
	"github.com/mithrel/dragkit/internal/wire"
)

func printResult(cmd *cobra.Command, res artifact.Result) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Path)
}

// readInput reads a file argument, where "-" means stdin.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func newNoteCmd() *cobra.Command {
	var file string
	var edit bool
	cmd := &cobra.Command{
		Use:   "note <title> [content|-]",
		Short: "Create a Markdown note from HTML, Markdown or card JSON",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !edit {
				return errors.New("title required (or use --edit)")
			}
			var title, content string
			if len(args) > 0 {
				title = args[0]
			}
			switch {
			case file != "" && len(args) == 2:
				return errors.New("content argument cannot be combined with --file")
			case file != "":
				s, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				content = s
			case len(args) == 2 && args[1] == "-":
				s, err := readInput(cmd, "-")
				if err != nil {
					return err
				}
				content = s
			case len(args) == 2:
				content = args[1]
			}

			if edit {
				var err error
				title, content, err = editNote(title, content)
				if err != nil {
					return err
				}
			}

			res, err := getApp(cmd).Artifacts.CreateNoteFile(title, content)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read content from file ('-' for stdin)")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "compose title and content in $EDITOR")
	cmd.Flags().String("mode", "", "override note.html_mode (strip|convert)")
	_ = cmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(convert.ModeStrip), string(convert.ModeConvert)}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func editNote(title, content string) (string, string, error) {
	path, err := editor.PathFor(title)
	if err != nil {
		return "", "", err
	}
	defer os.Remove(path)
	initial := editor.ComposeContent(title, content)
	final, changed, err := editor.OpenAt(path, []byte(initial))
	if err != nil {
		return "", "", err
	}
	if !changed && title == "" && content == "" {
		return "", "", errors.New("aborted: empty note")
	}
	t, body := editor.ParseEditedNote(string(final))
	if t == "" {
		t = editor.FirstLine(body)
	}
	return t, body, nil
}

func newBookmarkCmd() *cobra.Command {
	var fromDrop []string
	cmd := &cobra.Command{
		Use:   "bookmark <url> <title>",
		Short: "Create a bookmark file for a URL",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(fromDrop) > 0 {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			url, title := "", ""
			if len(fromDrop) > 0 {
				u, ok := convert.URLFromPaths(fromDrop)
				if !ok {
					return errors.New("no http(s) URL among dropped paths")
				}
				url, title = u, args[0]
			} else {
				url, title = args[0], args[1]
			}
			res, err := getApp(cmd).Artifacts.CreateBookmarkFile(url, title)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&fromDrop, "from-drop", nil, "dropped paths; the first http(s) entry becomes the URL")
	cmd.Flags().String("format", "", "override bookmark.format (webloc|url|desktop)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(artifact.FormatWebloc), string(artifact.FormatURL), string(artifact.FormatDesktop)}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	var s artifact.Snapshot
	var htmlFile, mdFile string
	cmd := &cobra.Command{
		Use:   "snapshot <url> <title>",
		Short: "Create a self-contained HTML snapshot of a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.URL, s.Title = args[0], args[1]
			if htmlFile != "" && mdFile != "" {
				return errors.New("choose either --content-html or --content-md")
			}
			if htmlFile != "" {
				c, err := readInput(cmd, htmlFile)
				if err != nil {
					return err
				}
				s.ContentHTML = c
			}
			if mdFile != "" {
				c, err := readInput(cmd, mdFile)
				if err != nil {
					return err
				}
				s.ContentMarkdown = c
			}
			res, err := getApp(cmd).Artifacts.CreateSnapshotFile(s)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&s.Description, "description", "", "page description")
	cmd.Flags().StringVar(&s.ImageURL, "image", "", "cover image URL")
	cmd.Flags().StringVar(&s.Notes, "notes", "", "personal notes appended to the snapshot")
	cmd.Flags().StringVar(&htmlFile, "content-html", "", "file with article HTML ('-' for stdin)")
	cmd.Flags().StringVar(&mdFile, "content-md", "", "file with article Markdown ('-' for stdin)")
	cmd.Flags().String("theme", "", "override snapshot.theme (light|dark)")
	return cmd
}

func newMarkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "marker",
		Short: "Ensure the drag icon marker file exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := getApp(cmd).Artifacts.CreateMarkerFile()
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup <path>...",
		Short: "Delete generated artifacts; paths outside the workspace are ignored",
		Args:  cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			app, ok := cmd.Context().Value(appKey).(*wire.App)
			if !ok {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			entries, err := app.Workspace.List()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			paths := make([]string, 0, len(entries))
			for _, e := range entries {
				paths = append(paths, e.Path)
			}
			return util.ScoreCompletions(toComplete, paths, 20), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			arts := getApp(cmd).Artifacts
			var errs []error
			for _, p := range args {
				if err := arts.CleanupFile(p); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}
