package history

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"gpuwatch/internal/history"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent availability transitions",
		Long: `List recent availability transitions recorded by the watcher.

Examples:
  gpuwatch history list
  gpuwatch history list --limit 50
  gpuwatch history list --type gpu_8x_h100
  gpuwatch history list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of transitions to display")
	cmd.Flags().String("type", "", "Filter by exact instance type name")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	filter, _ := cmd.Flags().GetString("type")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}

	repo, err := history.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var transitions []history.Transition
	if filter != "" {
		transitions, err = repo.ListByInstanceType(filter, limit)
	} else {
		transitions, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(transitions)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(transitions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No transitions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tDIRECTION\tINSTANCE TYPE\tREGION\tGPUS\tDETAIL")
	fmt.Fprintln(w, "----\t---------\t-------------\t------\t----\t------")
	for _, tr := range transitions {
		detail := tr.Detail
		if detail == "" {
			detail = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			tr.Timestamp.Local().Format("2006-01-02 15:04:05"),
			tr.Direction,
			tr.InstanceType,
			tr.Region,
			tr.GPUs,
			detail,
		)
	}
	w.Flush()
	return nil
}
