package auth

import (
	"errors"
	"fmt"

	"gpuwatch/internal/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key from the keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()
			err := store.Delete(auth.APIKeyName)
			if errors.Is(err, auth.ErrKeyNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key was stored.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Removed stored API key")
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
