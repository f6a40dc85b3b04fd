package cmd

import (
	"os"

	"gpuwatch/cmd/commands/auth"
	cfgcmd "gpuwatch/cmd/commands/config"
	"gpuwatch/cmd/commands/history"
	"gpuwatch/cmd/commands/watch"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "gpuwatch",
		Short: "A watchdog for scarce GPU capacity on Lambda Labs",
		Long: `gpuwatch polls the Lambda Labs instance-availability API and alerts you
the moment instance types you care about become available (or vanish
again) in specific regions. Alerts go to the log and, optionally, to a
Slack-compatible webhook.

Quick start:
  gpuwatch auth login                        # Store your API key
  gpuwatch watch -t h100 -w $WEBHOOK_URL     # Watch for any H100 capacity
  gpuwatch watch -t h100 -r us --min-gpus 8  # 8x H100s in US regions only
  gpuwatch history list                      # Review past transitions`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(history.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
