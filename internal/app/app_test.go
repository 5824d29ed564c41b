package app

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathrecall/internal/config"
	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/reminder"
	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

const sampleDoc = `{
  "id": "go-basics",
  "topic": "Go basics",
  "items": [
    {"id": "g1", "kind": "flashcard", "question": "Zero value of int?", "answer": "0"},
    {"id": "g2", "kind": "quiz", "question": "Keyword for goroutines?", "answer": "go", "options": ["go", "async"]},
    {"id": "g3", "kind": "fill_blank", "question": "___ := 1", "answer": "x"}
  ]
}`

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func openTestApp(t *testing.T) (*App, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	a, err := Open(context.Background(), Options{
		Config: &config.Config{
			User:   "u",
			DB:     config.DB{Driver: config.DriverSQLite},
			Broker: config.Broker{Exchange: "pathrecall.events"},
		},
		DBPath: filepath.Join(t.TempDir(), "app.db"),
		Now:    c.now,
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, c
}

func TestImportAndPractice(t *testing.T) {
	a, c := openTestApp(t)
	ctx := context.Background()

	path, items, err := a.Import(ctx, strings.NewReader(sampleDoc), "u")
	require.NoError(t, err)
	assert.Equal(t, "go-basics", path.ID)
	assert.Equal(t, "Go basics", path.Topic)
	require.Len(t, items, 3)
	assert.False(t, a.Events.Enabled())

	q, err := a.Manager.StartPath(ctx, "u", path.ID)
	require.NoError(t, err)
	require.NoError(t, a.Manager.Rate(ctx, q, spacedrep.RatingGood))
	a.Manager.Wait()

	// History is recorded through the listener wiring.
	history, err := a.History.QueryReviewEvents(ctx, "u", review.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "g1", history[0].ItemID)

	// Resume continues at the first unrated item.
	q, err = a.Manager.StartPath(ctx, "u", path.ID)
	require.NoError(t, err)
	cur, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "g2", cur.Item.ID)

	c.t = c.t.AddDate(0, 0, 3)
	n, err := a.Manager.CountDue(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImport_InvalidDocument(t *testing.T) {
	a, _ := openTestApp(t)
	_, _, err := a.Import(context.Background(), strings.NewReader(`{"topic": "x", "items": [{"kind": "essay", "question": "?"}]}`), "u")
	assert.ErrorIs(t, err, content.ErrInvalidDocument)
}

func TestImport_DuplicatePathFails(t *testing.T) {
	a, _ := openTestApp(t)
	ctx := context.Background()
	_, _, err := a.Import(ctx, strings.NewReader(sampleDoc), "u")
	require.NoError(t, err)
	_, _, err = a.Import(ctx, strings.NewReader(sampleDoc), "u")
	assert.Error(t, err)
}

func TestSummariesAndReset(t *testing.T) {
	a, _ := openTestApp(t)
	ctx := context.Background()
	path, _, err := a.Import(ctx, strings.NewReader(sampleDoc), "u")
	require.NoError(t, err)

	a.Manager.RateItem(ctx, "u", "g1", spacedrep.RatingEasy)
	a.Manager.RateItem(ctx, "u", "g3", spacedrep.RatingHard)
	a.Manager.Wait()

	sums, err := a.Summaries(ctx, "u")
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, 3, sums[0].Progress.Total)
	assert.Equal(t, 2, sums[0].Progress.Reviewed)
	assert.False(t, sums[0].Progress.Complete())

	assert.ErrorIs(t, a.Reset(ctx, "someone-else", path.ID), ErrPathNotFound)
	require.NoError(t, a.Reset(ctx, "u", path.ID))
	assert.ErrorIs(t, a.Reset(ctx, "u", path.ID), ErrPathNotFound)

	recs, err := a.Progress.ListProgressForUser(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReminder_UsesLocalNotifierWithoutBroker(t *testing.T) {
	a, c := openTestApp(t)
	ctx := context.Background()
	_, _, err := a.Import(ctx, strings.NewReader(sampleDoc), "u")
	require.NoError(t, err)
	a.Manager.RateItem(ctx, "u", "g1", spacedrep.RatingHard)
	a.Manager.Wait()
	c.t = c.t.AddDate(0, 0, 1)

	got := map[string]int{}
	r := a.Reminder(reminder.NotifierFunc(func(_ context.Context, userID string, n int) error {
		got[userID] = n
		return nil
	}))
	assert.Equal(t, 1, r.Check(ctx))
	assert.Equal(t, map[string]int{"u": 1}, got)
}

func TestOpen_RejectsOversizedPool(t *testing.T) {
	_, err := Open(context.Background(), Options{
		Config: &config.Config{
			User: "u",
			DB: config.DB{
				Driver:         config.DriverPostgres,
				URL:            "postgres://localhost/pathrecall",
				MaxConnections: math.MaxInt32 + 1,
			},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_connections")
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	flag := filepath.Join(dir, "flag", "a.db")
	conf := filepath.Join(dir, "conf", "b.db")

	got, err := resolveDBPath(flag, conf)
	require.NoError(t, err)
	assert.Equal(t, flag, got)

	got, err = resolveDBPath("", conf)
	require.NoError(t, err)
	assert.Equal(t, conf, got)

	t.Setenv("PATHRECALL_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err = resolveDBPath("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pathrecall", "pathrecall.db"), got)
}
