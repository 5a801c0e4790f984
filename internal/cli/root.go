package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/dragkit/internal/config"
	"github.com/mithrel/dragkit/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:           "dragkit-cli",
		Short:         "DragKit CLI: turn dragged cards and pages into files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, map[string]string{
				"root":   "workspace.root",
				"format": "bookmark.format",
				"mode":   "note.html_mode",
				"theme":  "snapshot.theme",
				"addr":   "http_addr",
				"token":  "auth.token",
			})

			var logOut io.Writer = cmd.ErrOrStderr()
			if quiet {
				logOut = io.Discard
			}
			app, err := wire.BuildApp(cmd.Context(), v, wire.Options{LogOutput: logOut})
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), appKey, app)
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
	cmd.PersistentFlags().String("root", "", "override workspace.root")

	cmd.AddCommand(newNoteCmd())
	cmd.AddCommand(newBookmarkCmd())
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newMarkerCmd())
	cmd.AddCommand(newCleanupCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newWorkspaceCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}
