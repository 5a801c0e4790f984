package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mithrel/dragkit/internal/keys"
	"github.com/mithrel/dragkit/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the artifact API on localhost for the desktop shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			token, err := keys.ResolveToken(app.Cfg.AuthToken, app.Tokens)
			if err != nil {
				return err
			}
			if token == "" {
				app.Log.Printf("serve: no auth token configured; api is open to local clients")
			}
			srv := server.New(app.Artifacts, token, app.Log)
			return srv.ListenAndServe(ctx, app.Cfg.HTTPAddr)
		},
	}
	cmd.Flags().String("addr", "", "override http_addr")
	cmd.Flags().String("token", "", "override auth.token")
	return cmd
}
