package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/dragkit/internal/keys"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the serve bearer token in the system keyring",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Create a random token, store it and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := keyringStore()
			if err != nil {
				return err
			}
			tok, err := keys.NewToken(32)
			if err != nil {
				return err
			}
			if err := store.Put(keys.AuthTokenID, tok); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tok)
			getApp(cmd).Log.Printf("stored auth token in keyring service=%s", keys.DefaultKeyringService)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := keyringStore()
			if err != nil {
				return err
			}
			return store.Delete(keys.AuthTokenID)
		},
	})
	return cmd
}

func keyringStore() (*keys.KeyringStore, error) {
	if !keys.KeyringAvailable() {
		return nil, errors.New("no system keyring available; set auth.token instead")
	}
	return &keys.KeyringStore{}, nil
}
