package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/app"
	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/spacedrep"
	"github.com/abhisek/pathrecall/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats [PATH_ID]",
	Short: "Show learning statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			return pathStats(cmd, a, args[0])
		}
		since, _ := cmd.Flags().GetDuration("since")
		return overallStats(cmd, a, since)
	},
}

func init() {
	statsCmd.Flags().Duration("since", 0, "Only count reviews newer than this (e.g. 168h)")
}

func overallStats(cmd *cobra.Command, a *app.App, since time.Duration) error {
	ctx := cmd.Context()
	user := a.Config.User
	out := cmd.OutOrStdout()

	var q review.HistoryQuery
	if since > 0 {
		q.From = a.Manager.Now().Add(-since)
	}
	events, err := a.History.QueryReviewEvents(ctx, user, q)
	if err != nil {
		return err
	}
	h := review.SummarizeHistory(events)

	due, err := a.Manager.CountDue(ctx, user)
	if err != nil {
		return err
	}
	sums, err := a.Summaries(ctx, user)
	if err != nil {
		return err
	}

	var total, reviewed, mastered int
	for _, s := range sums {
		total += s.Progress.Total
		reviewed += s.Progress.Reviewed
		mastered += s.Progress.Mastered
	}

	fmt.Fprintln(out, theme.Title.Render("Statistics for "+user))
	fmt.Fprintf(out, "%s %d paths, %d items, %d seen, %d mastered\n",
		theme.Label.Render("Content:"), len(sums), total, reviewed, mastered)
	fmt.Fprintf(out, "%s %d reviews, %.0f%% successful, %d promotions\n",
		theme.Label.Render("History:"), h.Reviews, h.SuccessRate()*100, h.Promoted)
	fmt.Fprintf(out, "%s %d\n", theme.Label.Render("Due now:"), due)
	return nil
}

func pathStats(cmd *cobra.Command, a *app.App, pathID string) error {
	ctx := cmd.Context()
	user := a.Config.User
	out := cmd.OutOrStdout()

	path, err := a.OwnedPath(ctx, user, pathID)
	if err != nil {
		return err
	}
	prog, err := a.Manager.PathProgress(ctx, user, path.ID)
	if err != nil {
		return err
	}
	items, err := a.Paths.ListItems(ctx, path.ID)
	if err != nil {
		return err
	}
	records, err := a.Progress.ListProgressForUser(ctx, user)
	if err != nil {
		return err
	}
	byItem := make(map[string]*spacedrep.ProgressRecord, len(records))
	for i := range records {
		byItem[records[i].ItemID] = &records[i]
	}

	fmt.Fprintln(out, theme.Title.Render(path.Topic))
	fmt.Fprintf(out, "Completion %s %3.0f%%   Mastery %s %3.0f%%\n\n",
		theme.ProgressBar(prog.Completion(), 12), prog.Completion()*100,
		theme.ProgressBar(prog.MasteryRatio(), 12), prog.MasteryRatio()*100)

	now := a.Manager.Now()
	fmt.Fprintf(out, "%3s  %-36s  %-10s  %7s  %7s  %s\n", "#", "Item", "Kind", "Mastery", "Reviews", "Status")
	fmt.Fprintln(out, strings.Repeat("─", 86))
	for _, it := range items {
		rec := byItem[it.ID]
		status := rec.Status(now)
		mastery, reviews := "-", "-"
		if rec != nil {
			mastery = fmt.Sprint(rec.MasteryLevel)
			reviews = fmt.Sprint(rec.ReviewCount)
		}
		fmt.Fprintf(out, "%3d  %-36s  %-10s  %7s  %7s  %s\n",
			it.Position+1, it.ID, it.Kind, mastery, reviews,
			theme.StatusStyle(status).Render(string(status)))
	}

	if prog.Complete() {
		fmt.Fprintln(out, "\n"+theme.Correct.Render("Every item has been reviewed."))
	}
	return nil
}
