package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

// EventRepository is the append-only review history.
type EventRepository struct {
	db DBTX
}

var _ review.Listener = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// OnReviewCompleted appends the completion to the review history.
func (r *EventRepository) OnReviewCompleted(ctx context.Context, c review.Completed) error {
	_, err := r.db.Exec(ctx, `
		WITH seq AS (
			UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1
			RETURNING next_val - 1 AS val
		)
		INSERT INTO review_events (sequence, user_id, item_id, rating, mastery_before, mastery_after, "timestamp")
		VALUES ((SELECT val FROM seq), $1, $2, $3, $4, $5, $6)`,
		c.UserID, c.ItemID, int(c.Rating), c.MasteryBefore, c.MasteryAfter, c.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

// QueryReviewEvents returns the user's review events in sequence order.
func (r *EventRepository) QueryReviewEvents(ctx context.Context, userID string, opts review.HistoryQuery) ([]review.HistoryEvent, error) {
	query, args := buildHistoryQuery(userID, opts)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var out []review.HistoryEvent
	for rows.Next() {
		var (
			ev     review.HistoryEvent
			rating int
		)
		if err := rows.Scan(
			&ev.Sequence,
			&ev.UserID,
			&ev.ItemID,
			&rating,
			&ev.MasteryBefore,
			&ev.MasteryAfter,
			&ev.ReviewedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		ev.Rating = spacedrep.Rating(rating)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func buildHistoryQuery(userID string, opts review.HistoryQuery) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT sequence, user_id, item_id, rating, mastery_before, mastery_after, "timestamp"
		FROM review_events WHERE user_id = $1`)
	args := []any{userID}

	if opts.After > 0 {
		args = append(args, opts.After)
		fmt.Fprintf(&b, " AND sequence > $%d", len(args))
	}
	if !opts.From.IsZero() {
		args = append(args, opts.From)
		fmt.Fprintf(&b, ` AND "timestamp" >= $%d`, len(args))
	}
	b.WriteString(" ORDER BY sequence")
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}
