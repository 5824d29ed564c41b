package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/spacedrep"
	"github.com/abhisek/pathrecall/internal/ui/theme"
)

var errRatingNotSaved = errors.New("rating was not saved, see the log for details")

type progressReader interface {
	GetProgress(ctx context.Context, userID, itemID string) (*spacedrep.ProgressRecord, error)
}

var rateCmd = &cobra.Command{
	Use:   "rate ITEM_ID RATING",
	Short: "Record a rating (hard, good, easy or 1-5) for a single item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := parseRating(args[1])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		user := a.Config.User
		item, err := a.Paths.GetItem(ctx, args[0])
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("unknown item %q", args[0])
		}
		if _, err := a.OwnedPath(ctx, user, item.PathID); err != nil {
			return err
		}

		rec, err := rateAndConfirm(ctx, a.Progress, a.Manager, user, item.ID, rating)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  mastery %d, next review %s\n",
			theme.RatingStyle(rating).Render(rating.String()),
			rec.MasteryLevel,
			rec.NextReviewAt.Local().Format("Mon Jan 2 15:04"))
		return nil
	},
}

// rateAndConfirm rates one item, waits for the write and returns the stored
// record. Every successful rating bumps the review count, so a count that
// did not move means the write was dropped.
func rateAndConfirm(ctx context.Context, progress progressReader, m *review.Manager, userID, itemID string, rating spacedrep.Rating) (*spacedrep.ProgressRecord, error) {
	before, err := progress.GetProgress(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	m.RateItem(ctx, userID, itemID, rating)
	m.Wait()

	after, err := progress.GetProgress(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if after == nil || (before != nil && after.ReviewCount <= before.ReviewCount) {
		return nil, errRatingNotSaved
	}
	return after, nil
}
