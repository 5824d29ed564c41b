package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathrecall/internal/content"
)

const (
	pathsTable = "paths"
	itemsTable = "items"
)

var (
	pathColumns = []string{"id", "user_id", "topic", "created_at"}
	itemColumns = []string{"id", "path_id", "topic", "kind", "prompt", "position"}
)

// PathRepo stores learning paths and their items.
type PathRepo struct {
	db  *sql.DB
	sql *entsql.DialectBuilder
}

// SavePath inserts a path together with its items in one transaction.
func (r *PathRepo) SavePath(ctx context.Context, path content.Path, items []content.Item) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args := r.sql.Insert(pathsTable).
		Columns(pathColumns...).
		Values(path.ID, path.UserID, path.Topic, formatTime(path.CreatedAt)).
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert path: %w", err)
	}

	if len(items) > 0 {
		ins := r.sql.Insert(itemsTable).Columns(itemColumns...)
		for _, it := range items {
			prompt, merr := json.Marshal(it.Prompt)
			if merr != nil {
				err = fmt.Errorf("marshal prompt: %w", merr)
				return err
			}
			ins.Values(it.ID, path.ID, it.Topic, string(it.Kind), string(prompt), it.Position)
		}
		query, args = ins.Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit path: %w", err)
	}
	return nil
}

// GetPath returns the path, or nil if it does not exist.
func (r *PathRepo) GetPath(ctx context.Context, pathID string) (*content.Path, error) {
	query, args := r.sql.Select(pathColumns...).
		From(r.sql.Table(pathsTable)).
		Where(entsql.EQ("id", pathID)).
		Query()

	p, err := scanPath(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get path: %w", err)
	}
	return p, nil
}

// ListPaths returns the user's paths, oldest first.
func (r *PathRepo) ListPaths(ctx context.Context, userID string) ([]content.Path, error) {
	query, args := r.sql.Select(pathColumns...).
		From(r.sql.Table(pathsTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("created_at"), entsql.Asc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	defer rows.Close()

	var out []content.Path
	for rows.Next() {
		p, err := scanPath(rows)
		if err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// DeletePath removes a path. Items, progress records and review events of
// the path are removed by cascade. Reports whether the path existed.
func (r *PathRepo) DeletePath(ctx context.Context, pathID string) (bool, error) {
	query, args := r.sql.Delete(pathsTable).
		Where(entsql.EQ("id", pathID)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete path: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete path: %w", err)
	}
	return n > 0, nil
}

// GetItem returns the item, or nil if it does not exist.
func (r *PathRepo) GetItem(ctx context.Context, itemID string) (*content.Item, error) {
	query, args := r.sql.Select(itemColumns...).
		From(r.sql.Table(itemsTable)).
		Where(entsql.EQ("id", itemID)).
		Query()

	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListItems returns the items of a path in presentation order.
func (r *PathRepo) ListItems(ctx context.Context, pathID string) ([]content.Item, error) {
	query, args := r.sql.Select(itemColumns...).
		From(r.sql.Table(itemsTable)).
		Where(entsql.EQ("path_id", pathID)).
		OrderBy(entsql.Asc("position")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func scanPath(row rowScanner) (*content.Path, error) {
	var (
		p         content.Path
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Topic, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	return &p, nil
}

func scanItem(row rowScanner) (*content.Item, error) {
	var (
		it     content.Item
		kind   string
		prompt string
	)
	if err := row.Scan(&it.ID, &it.PathID, &it.Topic, &kind, &prompt, &it.Position); err != nil {
		return nil, err
	}
	it.Kind = content.ItemKind(kind)
	if err := json.Unmarshal([]byte(prompt), &it.Prompt); err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return &it, nil
}
