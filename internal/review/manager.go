package review

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

// ProgressStore persists per-user progress records.
type ProgressStore interface {
	// GetProgress returns the record for (userID, itemID), or nil if none exists.
	GetProgress(ctx context.Context, userID, itemID string) (*spacedrep.ProgressRecord, error)

	// UpsertProgress creates or replaces the record for (userID, itemID).
	UpsertProgress(ctx context.Context, userID, itemID string, rec spacedrep.ProgressRecord) error

	// ListProgressForUser returns every record of the user.
	ListProgressForUser(ctx context.Context, userID string) ([]spacedrep.ProgressRecord, error)
}

// ItemCatalog resolves item definitions.
type ItemCatalog interface {
	// GetItem returns the item, or nil if it does not exist.
	GetItem(ctx context.Context, itemID string) (*content.Item, error)

	// ListItems returns the items of a path in presentation order.
	ListItems(ctx context.Context, pathID string) ([]content.Item, error)
}

// Completed describes a rating whose progress update has been persisted.
type Completed struct {
	UserID        string
	ItemID        string
	Rating        spacedrep.Rating
	MasteryBefore int
	MasteryAfter  int
	ReviewedAt    time.Time
	NextReviewAt  time.Time
}

// Listener receives review completions. Calls are fire-and-forget: errors
// are logged and never affect scheduling.
type Listener interface {
	OnReviewCompleted(ctx context.Context, c Completed) error
}

// Config configures a Manager.
type Config struct {
	Logger    *zap.Logger
	Listeners []Listener
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns a Config with a no-op logger and the wall clock.
func DefaultConfig() Config {
	return Config{
		Logger: zap.NewNop(),
		Now:    time.Now,
	}
}

// Manager owns the due queue and drives the rate, reschedule, advance loop.
//
// Rate moves the caller's cursor immediately and persists in the
// background. When Rate returns the write may not have landed yet; call
// Wait to block until every outstanding write has finished.
type Manager struct {
	progress  ProgressStore
	items     ItemCatalog
	listeners []Listener
	log       *zap.Logger
	now       func() time.Time

	inflight sync.WaitGroup
}

// NewManager creates a Manager.
func NewManager(progress ProgressStore, items ItemCatalog, cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{
		progress:  progress,
		items:     items,
		listeners: cfg.Listeners,
		log:       cfg.Logger,
		now:       cfg.Now,
	}
}

// Now returns the manager's clock reading.
func (m *Manager) Now() time.Time {
	return m.now()
}

// LoadDueItems returns a queue of the user's due items, earliest due first.
// Items are due when NextReviewAt is at or before now, compared as full
// timestamps. Records whose item has been deleted are skipped.
func (m *Manager) LoadDueItems(ctx context.Context, userID string) (*Queue, error) {
	due, err := m.dueRecords(ctx, userID, m.now())
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(due))
	for i := range due {
		rec := due[i]
		item, err := m.items.GetItem(ctx, rec.ItemID)
		if err != nil {
			return nil, &PersistenceError{Op: "load item", Err: err}
		}
		if item == nil {
			m.log.Warn("skipping progress record without item",
				zap.String("user_id", userID),
				zap.String("item_id", rec.ItemID))
			continue
		}
		entries = append(entries, Entry{Item: *item, Record: &rec})
	}
	return newQueue(userID, entries, 0), nil
}

// CountDue returns the number of items LoadDueItems would queue now.
// Records whose item no longer exists are not counted.
func (m *Manager) CountDue(ctx context.Context, userID string) (int, error) {
	q, err := m.LoadDueItems(ctx, userID)
	if err != nil {
		return 0, err
	}
	return q.Len(), nil
}

func (m *Manager) dueRecords(ctx context.Context, userID string, now time.Time) ([]spacedrep.ProgressRecord, error) {
	records, err := m.progress.ListProgressForUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list progress", Err: err}
	}

	var due []spacedrep.ProgressRecord
	for _, r := range records {
		if r.IsDue(now) {
			due = append(due, r)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].ItemID < due[j].ItemID
	})
	return due, nil
}

// StartPath returns a queue over every item of the path in presentation
// order, positioned at the first item the user has not rated yet.
func (m *Manager) StartPath(ctx context.Context, userID, pathID string) (*Queue, error) {
	items, records, err := m.pathState(ctx, userID, pathID)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string]spacedrep.ProgressRecord, len(records))
	for _, r := range records {
		byItem[r.ItemID] = r
	}

	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = Entry{Item: it}
		if r, ok := byItem[it.ID]; ok {
			entries[i].Record = &r
		}
	}

	start := ResumeIndex(items, ReviewedSet(records))
	return newQueue(userID, entries, start), nil
}

// PathProgress computes completion and mastery of a path for the user.
func (m *Manager) PathProgress(ctx context.Context, userID, pathID string) (PathProgress, error) {
	items, records, err := m.pathState(ctx, userID, pathID)
	if err != nil {
		return PathProgress{}, err
	}

	inPath := make(map[string]bool, len(items))
	for _, it := range items {
		inPath[it.ID] = true
	}

	now := m.now()
	p := PathProgress{PathID: pathID, Total: len(items)}
	for _, r := range records {
		if !inPath[r.ItemID] {
			continue
		}
		p.Reviewed++
		if r.IsMastered() {
			p.Mastered++
		}
		if r.IsDue(now) {
			p.Due++
		}
	}
	return p, nil
}

func (m *Manager) pathState(ctx context.Context, userID, pathID string) ([]content.Item, []spacedrep.ProgressRecord, error) {
	items, err := m.items.ListItems(ctx, pathID)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "list items", Err: err}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	records, err := m.progress.ListProgressForUser(ctx, userID)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "list progress", Err: err}
	}
	return items, records, nil
}

// Rate records a rating for the queue's current entry. The cursor moves to
// the next entry before the progress update is even dispatched; the update
// itself runs in the background and its failures are only logged.
func (m *Manager) Rate(ctx context.Context, q *Queue, rating spacedrep.Rating) error {
	now := m.now()
	e, ok := q.advance()
	if !ok {
		return ErrQueueExhausted
	}
	m.dispatch(ctx, q.userID, e.Item.ID, rating, now)
	return nil
}

// RateItem records a rating for a single item outside of any queue. Like
// Rate, it returns before the update is persisted.
func (m *Manager) RateItem(ctx context.Context, userID, itemID string, rating spacedrep.Rating) {
	m.dispatch(ctx, userID, itemID, rating, m.now())
}

// Wait blocks until all dispatched progress updates have finished.
func (m *Manager) Wait() {
	m.inflight.Wait()
}

// dispatch starts a detached progress update. The caller's cancellation is
// dropped so that leaving a session never aborts an outstanding write.
func (m *Manager) dispatch(ctx context.Context, userID, itemID string, rating spacedrep.Rating, now time.Time) {
	ctx = context.WithoutCancel(ctx)
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("progress update panicked",
					zap.String("user_id", userID),
					zap.String("item_id", itemID),
					zap.Any("panic", r))
			}
		}()
		m.persist(ctx, userID, itemID, rating, now)
	}()
}

func (m *Manager) persist(ctx context.Context, userID, itemID string, rating spacedrep.Rating, now time.Time) {
	fields := []zap.Field{
		zap.String("user_id", userID),
		zap.String("item_id", itemID),
		zap.Int("rating", int(rating)),
	}

	prior, err := m.progress.GetProgress(ctx, userID, itemID)
	if err != nil {
		m.log.Error("progress update dropped", append(fields,
			zap.Error(&PersistenceError{Op: "load progress", Err: err}))...)
		return
	}

	if prior == nil {
		item, err := m.items.GetItem(ctx, itemID)
		if err != nil {
			m.log.Error("progress update dropped", append(fields,
				zap.Error(&PersistenceError{Op: "load item", Err: err}))...)
			return
		}
		if item == nil {
			m.log.Error("progress update dropped", append(fields,
				zap.Error(&InvalidStateError{UserID: userID, ItemID: itemID}))...)
			return
		}
	}

	next := spacedrep.Advance(prior, rating, now)
	next.UserID = userID
	next.ItemID = itemID

	if err := m.progress.UpsertProgress(ctx, userID, itemID, next); err != nil {
		m.log.Error("progress update dropped", append(fields,
			zap.Error(&PersistenceError{Op: "save progress", Err: err}))...)
		return
	}

	before := 0
	if prior != nil {
		before = prior.MasteryLevel
	}
	m.log.Debug("progress updated", append(fields,
		zap.Int("mastery", next.MasteryLevel),
		zap.Time("next_review_at", next.NextReviewAt))...)

	m.notify(ctx, Completed{
		UserID:        userID,
		ItemID:        itemID,
		Rating:        rating,
		MasteryBefore: before,
		MasteryAfter:  next.MasteryLevel,
		ReviewedAt:    now,
		NextReviewAt:  next.NextReviewAt,
	})
}

func (m *Manager) notify(ctx context.Context, c Completed) {
	for _, l := range m.listeners {
		if err := l.OnReviewCompleted(ctx, c); err != nil {
			m.log.Warn("review listener failed",
				zap.String("listener", fmt.Sprintf("%T", l)),
				zap.String("user_id", c.UserID),
				zap.Error(err))
		}
	}
}
