package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathrecall/internal/spacedrep"
)

const progressTable = "progress"

var progressColumns = []string{
	"user_id", "item_id", "mastery_level", "review_count", "last_reviewed_at", "next_review_at",
}

// ProgressRepo stores spaced repetition state per (user, item).
type ProgressRepo struct {
	db  *sql.DB
	sql *entsql.DialectBuilder
}

// GetProgress returns the record for (userID, itemID), or nil if none exists.
func (r *ProgressRepo) GetProgress(ctx context.Context, userID, itemID string) (*spacedrep.ProgressRecord, error) {
	query, args := r.sql.Select(progressColumns...).
		From(r.sql.Table(progressTable)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("item_id", itemID),
		)).
		Query()

	rec, err := scanProgress(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return rec, nil
}

// UpsertProgress creates or replaces the record for (userID, itemID).
func (r *ProgressRepo) UpsertProgress(ctx context.Context, userID, itemID string, rec spacedrep.ProgressRecord) error {
	query, args := r.sql.Insert(progressTable).
		Columns(progressColumns...).
		Values(
			userID,
			itemID,
			rec.MasteryLevel,
			rec.ReviewCount,
			formatTime(rec.LastReviewedAt),
			nullTime(rec.NextReviewAt),
		).
		OnConflict(
			entsql.ConflictColumns("user_id", "item_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// ListProgressForUser returns every record of the user, including records
// that are not due yet. Due filtering happens in the caller against a full
// timestamp.
func (r *ProgressRepo) ListProgressForUser(ctx context.Context, userID string) ([]spacedrep.ProgressRecord, error) {
	query, args := r.sql.Select(progressColumns...).
		From(r.sql.Table(progressTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("item_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []spacedrep.ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*spacedrep.ProgressRecord, error) {
	var (
		rec        spacedrep.ProgressRecord
		lastReview string
		nextReview sql.NullString
	)
	if err := row.Scan(
		&rec.UserID,
		&rec.ItemID,
		&rec.MasteryLevel,
		&rec.ReviewCount,
		&lastReview,
		&nextReview,
	); err != nil {
		return nil, err
	}

	var err error
	if rec.LastReviewedAt, err = parseTime(lastReview); err != nil {
		return nil, fmt.Errorf("last_reviewed_at: %w", err)
	}
	if nextReview.Valid {
		if rec.NextReviewAt, err = parseTime(nextReview.String); err != nil {
			return nil, fmt.Errorf("next_review_at: %w", err)
		}
	}
	return &rec, nil
}

// timeLayout is fixed-width RFC 3339 in UTC so stored text sorts in time
// order and keeps the full time of day.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
