package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countMap map[string]int

func (c countMap) CountDue(_ context.Context, userID string) (int, error) {
	n, ok := c[userID]
	if !ok {
		return 0, errors.New("unknown user")
	}
	return n, nil
}

type recorder struct {
	mu    sync.Mutex
	calls map[string]int
	fail  string
}

func (r *recorder) NotifyDue(_ context.Context, userID string, dueCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if userID == r.fail {
		return errors.New("broker down")
	}
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[userID] = dueCount
	return nil
}

func (r *recorder) snapshot() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.calls))
	for k, v := range r.calls {
		out[k] = v
	}
	return out
}

func TestCheck_NotifiesOnlyUsersWithDueItems(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := &recorder{}
	s := New(countMap{"alice": 3, "bob": 0}, rec, Config{
		Users:  []string{"alice", "bob", "ghost"},
		Logger: zap.New(core),
	})

	got := s.Check(context.Background())

	assert.Equal(t, 1, got)
	assert.Equal(t, map[string]int{"alice": 3}, rec.snapshot())
	assert.Equal(t, 1, logs.FilterMessage("count due items").Len(), "lookup failure for ghost is logged")
}

func TestCheck_NotifierFailureContinues(t *testing.T) {
	rec := &recorder{fail: "alice"}
	s := New(countMap{"alice": 1, "bob": 2}, rec, Config{Users: []string{"alice", "bob"}})

	assert.Equal(t, 1, s.Check(context.Background()))
	assert.Equal(t, map[string]int{"bob": 2}, rec.snapshot())
}

func TestNotifierFunc(t *testing.T) {
	var gotUser string
	var gotCount int
	n := NotifierFunc(func(_ context.Context, userID string, dueCount int) error {
		gotUser, gotCount = userID, dueCount
		return nil
	})
	require.NoError(t, n.NotifyDue(context.Background(), "u", 7))
	assert.Equal(t, "u", gotUser)
	assert.Equal(t, 7, gotCount)
}

func TestStart_RunsImmediately(t *testing.T) {
	rec := &recorder{}
	s := New(countMap{"alice": 2}, rec, Config{Users: []string{"alice"}, Interval: time.Hour})
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return rec.snapshot()["alice"] == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNew_Defaults(t *testing.T) {
	s := New(countMap{}, &recorder{}, Config{})
	assert.Equal(t, DefaultInterval, s.interval)
	assert.NotNil(t, s.log)
}
