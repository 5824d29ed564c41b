package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abhisek/pathrecall/internal/spacedrep"
)

// ProgressRepository provides access to progress records in the database.
type ProgressRepository struct {
	db DBTX
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(db DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetProgress returns the record for (userID, itemID), or nil if none exists.
func (r *ProgressRepository) GetProgress(ctx context.Context, userID, itemID string) (*spacedrep.ProgressRecord, error) {
	query := `
		SELECT user_id, item_id, mastery_level, review_count, last_reviewed_at, next_review_at
		FROM progress
		WHERE user_id = $1 AND item_id = $2
	`

	rec, err := scanProgress(r.db.QueryRow(ctx, query, userID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return rec, nil
}

// UpsertProgress creates or replaces the record for (userID, itemID).
func (r *ProgressRepository) UpsertProgress(ctx context.Context, userID, itemID string, rec spacedrep.ProgressRecord) error {
	query := `
		INSERT INTO progress (
			user_id, item_id, mastery_level, review_count, last_reviewed_at, next_review_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, item_id) DO UPDATE SET
			mastery_level = EXCLUDED.mastery_level,
			review_count = EXCLUDED.review_count,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_review_at = EXCLUDED.next_review_at
	`

	var next *time.Time
	if !rec.NextReviewAt.IsZero() {
		next = &rec.NextReviewAt
	}

	_, err := r.db.Exec(ctx, query,
		userID,
		itemID,
		rec.MasteryLevel,
		rec.ReviewCount,
		rec.LastReviewedAt,
		next,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// ListProgressForUser returns every record of the user. The due filter is
// applied by the caller on full timestamps, never here.
func (r *ProgressRepository) ListProgressForUser(ctx context.Context, userID string) ([]spacedrep.ProgressRecord, error) {
	query := `
		SELECT user_id, item_id, mastery_level, review_count, last_reviewed_at, next_review_at
		FROM progress
		WHERE user_id = $1
		ORDER BY item_id
	`

	rows, err := r.db.Query(ctx, query, userID)
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
	return out, rows.Err()
}

func scanProgress(row pgx.Row) (*spacedrep.ProgressRecord, error) {
	var (
		rec  spacedrep.ProgressRecord
		next *time.Time
	)
	if err := row.Scan(
		&rec.UserID,
		&rec.ItemID,
		&rec.MasteryLevel,
		&rec.ReviewCount,
		&rec.LastReviewedAt,
		&next,
	); err != nil {
		return nil, err
	}
	if next != nil {
		rec.NextReviewAt = *next
	}
	return &rec, nil
}
