package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pathrecall/internal/config"
	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/events"
	"github.com/abhisek/pathrecall/internal/postgres"
	"github.com/abhisek/pathrecall/internal/reminder"
	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/store"
)

// ErrPathNotFound is returned when a path does not exist or belongs to
// another user.
var ErrPathNotFound = errors.New("learning path not found")

// PathStore persists learning paths and resolves their items.
type PathStore interface {
	review.ItemCatalog
	SavePath(ctx context.Context, path content.Path, items []content.Item) error
	GetPath(ctx context.Context, pathID string) (*content.Path, error)
	ListPaths(ctx context.Context, userID string) ([]content.Path, error)
	DeletePath(ctx context.Context, pathID string) (bool, error)
}

// HistoryStore records completed reviews and answers history queries.
type HistoryStore interface {
	review.Listener
	QueryReviewEvents(ctx context.Context, userID string, q review.HistoryQuery) ([]review.HistoryEvent, error)
}

// Options configures Open.
type Options struct {
	Config *config.Config
	// DBPath overrides the configured SQLite file.
	DBPath string
	Logger *zap.Logger
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// App wires the persistence backend, the event publisher and the review
// manager together.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Progress review.ProgressStore
	Paths    PathStore
	History  HistoryStore
	Events   *events.Publisher
	Manager  *review.Manager

	closeStore func() error
	now        func() time.Time
}

// Open connects the configured backend and broker.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &App{Config: cfg, Log: log, now: now}

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		a.Progress, a.Paths, a.History, a.closeStore = s.ProgressRepo(), s.PathRepo(), s.EventRepo(), s.Close
	default:
		dbPath, err := resolveDBPath(opts.DBPath, cfg.DB.Path)
		if err != nil {
			return nil, err
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.Progress, a.Paths, a.History, a.closeStore = s.ProgressRepo(), s.PathRepo(), s.EventRepo(), s.Close
	}

	pub, err := events.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, log)
	if err != nil {
		a.closeStore()
		return nil, err
	}
	a.Events = pub

	listeners := []review.Listener{a.History}
	if pub.Enabled() {
		listeners = append(listeners, pub)
	}
	a.Manager = review.NewManager(a.Progress, a.Paths, review.Config{
		Logger:    log,
		Listeners: listeners,
		Now:       now,
	})
	return a, nil
}

// resolveDBPath applies the flag > config/env > XDG default priority.
func resolveDBPath(flag, configured string) (string, error) {
	for _, p := range []string{flag, configured} {
		if p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}

// Close waits for outstanding progress writes, then releases the broker
// and the database.
func (a *App) Close() error {
	a.Manager.Wait()
	var errs []error
	if err := a.Events.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.closeStore(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Import validates a learning-path document and stores it for the user.
func (a *App) Import(ctx context.Context, r io.Reader, userID string) (content.Path, []content.Item, error) {
	doc, err := content.ParseDocument(r)
	if err != nil {
		return content.Path{}, nil, err
	}
	path, items := doc.Build(userID, a.now())
	if err := a.Paths.SavePath(ctx, path, items); err != nil {
		return content.Path{}, nil, fmt.Errorf("save path: %w", err)
	}
	a.Log.Info("learning path imported",
		zap.String("path_id", path.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(items)))
	return path, items, nil
}

// OwnedPath returns the path if it belongs to userID.
func (a *App) OwnedPath(ctx context.Context, userID, pathID string) (*content.Path, error) {
	p, err := a.Paths.GetPath(ctx, pathID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, ErrPathNotFound
	}
	return p, nil
}

// Reset deletes one of the user's paths with all of its progress and history.
func (a *App) Reset(ctx context.Context, userID, pathID string) error {
	if _, err := a.OwnedPath(ctx, userID, pathID); err != nil {
		return err
	}
	existed, err := a.Paths.DeletePath(ctx, pathID)
	if err != nil {
		return err
	}
	if !existed {
		return ErrPathNotFound
	}
	a.Log.Info("learning path reset", zap.String("path_id", pathID), zap.String("user_id", userID))
	return nil
}

// PathSummary pairs a path with the user's progress through it.
type PathSummary struct {
	Path     content.Path
	Progress review.PathProgress
}

// Summaries returns every path of the user with its progress, oldest first.
func (a *App) Summaries(ctx context.Context, userID string) ([]PathSummary, error) {
	paths, err := a.Paths.ListPaths(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PathSummary, 0, len(paths))
	for _, p := range paths {
		prog, err := a.Manager.PathProgress(ctx, userID, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, PathSummary{Path: p, Progress: prog})
	}
	return out, nil
}

// Reminder builds the periodic due reminder. Reminders go to the broker
// when one is configured and to notify otherwise.
func (a *App) Reminder(notify reminder.Notifier) *reminder.Scheduler {
	var n reminder.Notifier = notify
	if a.Events.Enabled() {
		n = a.Events
	}
	return reminder.New(a.Manager, n, reminder.Config{
		Users:    a.Config.ReminderUsers(),
		Interval: a.Config.Reminder.Interval,
		Logger:   a.Log,
	})
}
