package auth

import (
	"errors"
	"fmt"

	"gpuwatch/internal/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()
			key, err := store.Get(auth.APIKeyName)
			if errors.Is(err, auth.ErrKeyNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key stored. Run 'gpuwatch auth login'.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "API key stored (%s)\n", maskKey(key))
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

// maskKey shows just enough of a key to recognize it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
