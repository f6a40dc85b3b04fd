// Package history implements the "gpuwatch history" command group for
// reviewing recorded availability transitions.
package history

import "github.com/spf13/cobra"

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage the recorded availability transitions",
		Long: "View past appeared/disappeared transitions and prune old entries.\n\n" +
			"History is stored locally in ~/.config/gpuwatch/gpuwatch.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
