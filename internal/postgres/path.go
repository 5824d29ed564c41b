package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/abhisek/pathrecall/internal/content"
)

// PathRepository stores learning paths and their items.
type PathRepository struct {
	db DBTX
	tx *Transactor
}

// NewPathRepository creates a new PathRepository.
func NewPathRepository(db DBTX, tx *Transactor) *PathRepository {
	return &PathRepository{db: db, tx: tx}
}

// SavePath inserts a path together with its items in one transaction.
func (r *PathRepository) SavePath(ctx context.Context, path content.Path, items []content.Item) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO paths (id, user_id, topic, created_at) VALUES ($1, $2, $3, $4)`,
			path.ID, path.UserID, path.Topic, path.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert path: %w", err)
		}

		batch := &pgx.Batch{}
		for _, it := range items {
			batch.Queue(
				`INSERT INTO items (id, path_id, topic, kind, prompt, position) VALUES ($1, $2, $3, $4, $5, $6)`,
				it.ID, path.ID, it.Topic, string(it.Kind), it.Prompt, it.Position,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
}

// GetPath returns the path, or nil if it does not exist.
func (r *PathRepository) GetPath(ctx context.Context, pathID string) (*content.Path, error) {
	var p content.Path
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, topic, created_at FROM paths WHERE id = $1`, pathID,
	).Scan(&p.ID, &p.UserID, &p.Topic, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get path: %w", err)
	}
	return &p, nil
}

// ListPaths returns the user's paths, oldest first.
func (r *PathRepository) ListPaths(ctx context.Context, userID string) ([]content.Path, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, topic, created_at FROM paths WHERE user_id = $1 ORDER BY created_at, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	defer rows.Close()

	var out []content.Path
	for rows.Next() {
		var p content.Path
		if err := rows.Scan(&p.ID, &p.UserID, &p.Topic, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePath removes a path; items, progress and review events cascade.
// Reports whether the path existed.
func (r *PathRepository) DeletePath(ctx context.Context, pathID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM paths WHERE id = $1`, pathID)
	if err != nil {
		return false, fmt.Errorf("delete path: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetItem returns the item, or nil if it does not exist.
func (r *PathRepository) GetItem(ctx context.Context, itemID string) (*content.Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx,
		`SELECT id, path_id, topic, kind, prompt, position FROM items WHERE id = $1`, itemID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListItems returns the items of a path in presentation order.
func (r *PathRepository) ListItems(ctx context.Context, pathID string) ([]content.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, path_id, topic, kind, prompt, position FROM items WHERE path_id = $1 ORDER BY position`, pathID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []content.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*content.Item, error) {
	var (
		it   content.Item
		kind string
	)
	if err := row.Scan(&it.ID, &it.PathID, &it.Topic, &kind, &it.Prompt, &it.Position); err != nil {
		return nil, err
	}
	it.Kind = content.ItemKind(kind)
	return &it, nil
}
