// Package auth implements the "gpuwatch auth" command group for managing
// the stored Lambda Labs API key.
package auth

import "github.com/spf13/cobra"

// NewCommand returns the "auth" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored Lambda Labs API key",
		Long: `Store, inspect, or remove the Lambda Labs API key in the local keychain.

A stored key is used by 'gpuwatch watch' whenever --api-key and the
LAMBDA_API_KEY environment variable are both unset.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}
