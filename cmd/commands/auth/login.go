package auth

import (
	"fmt"
	"os"
	"strings"

	"gpuwatch/internal/auth"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Lambda Labs API key in the local keychain",
		Long: `Store the Lambda Labs API key in the local keychain.

Example:
  gpuwatch auth login`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			key, err := cmd.Flags().GetString("key")
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}

			key = strings.TrimSpace(key)
			if key == "" {
				fmt.Fprint(os.Stdout, "Enter API key: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stdout)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				key = strings.TrimSpace(string(bytes))
			}

			if key == "" {
				fmt.Fprintln(os.Stderr, "API key cannot be empty")
				return
			}

			store := auth.DefaultStore()
			if err := store.Set(auth.APIKeyName, key); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}

			fmt.Fprintln(os.Stdout, "Saved Lambda Labs API key")
		},
	}

	cmd.Flags().String("key", "", "API key (omit to be prompted without echo)")

	return cmd
}
