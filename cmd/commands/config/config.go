// Package config implements the "gpuwatch config" command group.
package config

import (
	"gpuwatch/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gpuwatch configuration",
		Long: "View and modify persistent gpuwatch settings.\n\n" +
			"Configuration is stored at ~/.config/gpuwatch/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
