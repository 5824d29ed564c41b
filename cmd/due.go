package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/ui/theme"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List items due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		countOnly, _ := cmd.Flags().GetBool("count")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		user := a.Config.User

		if countOnly {
			n, err := a.Manager.CountDue(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, n)
			return nil
		}

		q, err := a.Manager.LoadDueItems(ctx, user)
		if err != nil {
			return err
		}
		if q.Len() == 0 {
			fmt.Fprintln(out, "Nothing is due right now.")
			return nil
		}

		renderDueTable(out, q.Entries(), a.Manager.Now())
		fmt.Fprintf(out, "\n%d due\n", q.Len())
		return nil
	},
}

func renderDueTable(out io.Writer, entries []review.Entry, now time.Time) {
	fmt.Fprintf(out, "%-36s  %-24s  %-10s  %7s  %s\n", "Item", "Topic", "Kind", "Mastery", "Overdue")
	fmt.Fprintln(out, strings.Repeat("─", 96))
	for _, e := range entries {
		fmt.Fprintf(out, "%-36s  %s  %-10s  %7d  %s\n",
			e.Item.ID, cell(e.Item.Topic, 24), e.Item.Kind, e.Record.MasteryLevel,
			theme.Warning.Render(fmt.Sprintf("%.1fd", e.Record.OverdueDays(now))))
	}
}

func init() {
	dueCmd.Flags().Bool("count", false, "Print only the number of due items")
}
