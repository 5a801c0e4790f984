package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/mithrel/dragkit/internal/present"
	"github.com/mithrel/dragkit/internal/ui"
	"github.com/mithrel/dragkit/internal/util"
	"github.com/mithrel/dragkit/internal/workspace"
)

func newWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Inspect and clean the drag workspace",
	}
	cmd.AddCommand(newWorkspacePathCmd())
	cmd.AddCommand(newWorkspaceListCmd())
	cmd.AddCommand(newWorkspaceShowCmd())
	cmd.AddCommand(newWorkspacePurgeCmd())
	return cmd
}

func newWorkspacePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the workspace directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), getApp(cmd).Workspace.Dir())
			return err
		},
	}
}

func newWorkspaceListCmd() *cobra.Command {
	var outputMode string
	var headers bool
	var limit int
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List generated artifacts, optionally fuzzy filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := present.ParseMode(strings.ToLower(outputMode))
			if err != nil {
				return err
			}
			app := getApp(cmd)
			entries, err := app.Workspace.List()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				entries = util.FilterEntries(args[0], entries)
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: app.Cfg.Output.Pretty,
				Headers:    headers,
				OnDelete: func(e workspace.Entry) error {
					return app.Artifacts.CleanupFile(e.Path)
				},
			}
			return renderEntries(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), entries, opts)
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|paths|json|ndjson|tui")
	cmd.Flags().BoolVar(&headers, "headers", true, "print column headers in plain mode")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n artifacts")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "paths", "json", "ndjson", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newWorkspaceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <query>",
		Short: "Show details of the best matching artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := getApp(cmd).Workspace.List()
			if err != nil {
				return err
			}
			matches := util.FilterEntries(args[0], entries)
			if len(matches) == 0 {
				return fmt.Errorf("no artifact matches %q", args[0])
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), ui.FormatEntry(matches[0]))
			return err
		},
	}
}

func newWorkspacePurgeCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every artifact in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := getApp(cmd).Workspace
			if err := confirmDelete("Purge "+ws.Dir()+"?", "This permanently deletes every generated artifact.", yes); err != nil {
				return err
			}
			n, err := ws.Purge()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d artifacts.\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt")
	return cmd
}

func confirmDelete(title, desc string, yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(os.Stdin.Fd()) {
		return errors.New("confirmation required; rerun with --yes")
	}
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return errors.New("aborted")
	}
	return nil
}
