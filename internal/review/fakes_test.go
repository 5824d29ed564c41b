package review

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

var errBackend = errors.New("backend unavailable")

// memStore is an in-memory ProgressStore and ItemCatalog for tests.
type memStore struct {
	mu      sync.Mutex
	records map[string]spacedrep.ProgressRecord // key: user|item
	items   map[string]content.Item

	listErr    error
	getErr     error
	getItemErr error
	upsertErr  error
	// gate, when non-nil, blocks UpsertProgress until closed.
	gate    chan struct{}
	upserts int
}

func newMemStore(items ...content.Item) *memStore {
	s := &memStore{
		records: make(map[string]spacedrep.ProgressRecord),
		items:   make(map[string]content.Item),
	}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func key(userID, itemID string) string { return userID + "|" + itemID }

func (s *memStore) put(rec spacedrep.ProgressRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key(rec.UserID, rec.ItemID)] = rec
}

func (s *memStore) record(userID, itemID string) (spacedrep.ProgressRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key(userID, itemID)]
	return r, ok
}

func (s *memStore) GetProgress(_ context.Context, userID, itemID string) (*spacedrep.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	r, ok := s.records[key(userID, itemID)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memStore) UpsertProgress(_ context.Context, userID, itemID string, rec spacedrep.ProgressRecord) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts++
	s.records[key(userID, itemID)] = rec
	return nil
}

func (s *memStore) ListProgressForUser(_ context.Context, userID string) ([]spacedrep.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []spacedrep.ProgressRecord
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) GetItem(_ context.Context, itemID string) (*content.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getItemErr != nil {
		return nil, s.getItemErr
	}
	it, ok := s.items[itemID]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *memStore) ListItems(_ context.Context, pathID string) ([]content.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []content.Item
	for _, it := range s.items {
		if it.PathID == pathID {
			out = append(out, it)
		}
	}
	// Deliberately unordered input for the manager to sort.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// recordingListener captures completions.
type recordingListener struct {
	mu    sync.Mutex
	got   []Completed
	fails bool
}

func (l *recordingListener) OnReviewCompleted(_ context.Context, c Completed) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.got = append(l.got, c)
	if l.fails {
		return errBackend
	}
	return nil
}

func (l *recordingListener) completions() []Completed {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Completed, len(l.got))
	copy(out, l.got)
	return out
}
