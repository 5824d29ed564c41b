package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/ui/theme"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List imported learning paths with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sums, err := a.Summaries(cmd.Context(), a.Config.User)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sums) == 0 {
			fmt.Fprintln(out, "No learning paths yet. Import one with: pathrecall import FILE")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-28s  %5s  %5s  %5s  %s\n",
			"ID", "Topic", "Items", "Done", "Due", "Completion")
		fmt.Fprintln(out, strings.Repeat("─", 104))

		for _, s := range sums {
			p := s.Progress
			fmt.Fprintf(out, "%-36s  %s  %5d  %5d  %5d  %s %3.0f%%\n",
				s.Path.ID, cell(s.Path.Topic, 28), p.Total, p.Reviewed, p.Due,
				theme.ProgressBar(p.Completion(), 12), p.Completion()*100)
		}

		fmt.Fprintf(out, "\n%d paths\n", len(sums))
		return nil
	},
}
