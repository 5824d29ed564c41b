package postgres

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	entmigrate "github.com/abhisek/pathrecall/ent/migrate"
)

// Store is the PostgreSQL-backed persistence layer.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL and applies the schema.
func Open(ctx context.Context, dsn string, cfg PoolConfig) (*Store, error) {
	pool, err := NewPool(ctx, dsn, cfg)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) ProgressRepo() *ProgressRepository {
	return NewProgressRepository(s.pool)
}

func (s *Store) PathRepo() *PathRepository {
	return NewPathRepository(s.pool, NewTransactor(s.pool))
}

func (s *Store) EventRepo() *EventRepository {
	return NewEventRepository(s.pool)
}

// migrate creates the tables declared under ent/schema and the event
// sequence counter.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	drv := entsql.OpenDB(dialect.Postgres, db)
	if err := entmigrate.NewSchema(drv).Create(ctx); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	// Review events take their sequence from this single-row counter so
	// numbers never go backwards after cascading deletes.
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`); err != nil {
		return fmt.Errorf("create sequence table: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO global_sequence (id, next_val) VALUES (1, 1) ON CONFLICT (id) DO NOTHING`,
	); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}
