package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

const reviewEventsTable = "review_events"

var reviewEventColumns = []string{
	"sequence", "user_id", "item_id", "rating", "mastery_before", "mastery_after", "timestamp",
}

// EventRepo is the append-only review history. It implements
// review.Listener so the review manager records history after every
// successful progress update.
type EventRepo struct {
	db  *sql.DB
	sql *entsql.DialectBuilder
	seq *sequenceCounter
}

var _ review.Listener = (*EventRepo)(nil)

// OnReviewCompleted appends the completion to the review history.
func (r *EventRepo) OnReviewCompleted(ctx context.Context, c review.Completed) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.sql.Insert(reviewEventsTable).
		Columns(reviewEventColumns...).
		Values(
			seqNum,
			c.UserID,
			c.ItemID,
			int(c.Rating),
			c.MasteryBefore,
			c.MasteryAfter,
			formatTime(c.ReviewedAt),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

// QueryReviewEvents returns the user's review events in sequence order.
func (r *EventRepo) QueryReviewEvents(ctx context.Context, userID string, opts review.HistoryQuery) ([]review.HistoryEvent, error) {
	sel := r.sql.Select(reviewEventColumns...).
		From(r.sql.Table(reviewEventsTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", formatTime(opts.From)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var out []review.HistoryEvent
	for rows.Next() {
		var (
			ev         review.HistoryEvent
			rating     int
			reviewedAt string
		)
		if err := rows.Scan(
			&ev.Sequence,
			&ev.UserID,
			&ev.ItemID,
			&rating,
			&ev.MasteryBefore,
			&ev.MasteryAfter,
			&reviewedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		ev.Rating = spacedrep.Rating(rating)
		if ev.ReviewedAt, err = parseTime(reviewedAt); err != nil {
			return nil, fmt.Errorf("timestamp: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
