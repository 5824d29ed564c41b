package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

func TestBuildHistoryQuery(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		opts     review.HistoryQuery
		wantTail string
		wantArgs []any
	}{
		{
			name:     "no filters",
			wantTail: "WHERE user_id = $1 ORDER BY sequence",
			wantArgs: []any{"u"},
		},
		{
			name:     "after and limit",
			opts:     review.HistoryQuery{After: 7, Limit: 10},
			wantTail: "WHERE user_id = $1 AND sequence > $2 ORDER BY sequence LIMIT $3",
			wantArgs: []any{"u", int64(7), 10},
		},
		{
			name:     "from only",
			opts:     review.HistoryQuery{From: from},
			wantTail: `WHERE user_id = $1 AND "timestamp" >= $2 ORDER BY sequence`,
			wantArgs: []any{"u", from},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildHistoryQuery("u", tt.opts)
			assert.Contains(t, query, tt.wantTail)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

// openTestStore connects to the database named by PATHRECALL_TEST_POSTGRES_DSN.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("PATHRECALL_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PATHRECALL_TEST_POSTGRES_DSN not set")
	}
	s, err := Open(context.Background(), dsn, PoolConfig{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Random IDs keep reruns against a shared database independent.
	pathID := uuid.NewString()
	userID := "u-" + uuid.NewString()
	itemA, itemB := uuid.NewString(), uuid.NewString()
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	paths := s.PathRepo()
	require.NoError(t, paths.SavePath(ctx,
		content.Path{ID: pathID, UserID: userID, Topic: "go", CreatedAt: now},
		[]content.Item{
			{ID: itemA, Topic: "go", Kind: content.KindFlashcard, Prompt: content.Prompt{Question: "q1", Answer: "a1"}, Position: 0},
			{ID: itemB, Topic: "go", Kind: content.KindQuiz, Prompt: content.Prompt{Question: "q2", Answer: "x", Options: []string{"x", "y"}}, Position: 1},
		},
	))
	t.Cleanup(func() { _, _ = paths.DeletePath(context.Background(), pathID) })

	items, err := paths.ListItems(ctx, pathID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, itemA, items[0].ID)
	assert.Equal(t, []string{"x", "y"}, items[1].Prompt.Options)

	progress := s.ProgressRepo()
	rec := spacedrep.Advance(nil, spacedrep.RatingGood, now)
	require.NoError(t, progress.UpsertProgress(ctx, userID, itemA, rec))

	got, err := progress.GetProgress(ctx, userID, itemA)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.MasteryLevel)
	assert.True(t, got.NextReviewAt.Equal(rec.NextReviewAt))

	missing, err := progress.GetProgress(ctx, userID, itemB)
	require.NoError(t, err)
	assert.Nil(t, missing)

	events := s.EventRepo()
	require.NoError(t, events.OnReviewCompleted(ctx, review.Completed{
		UserID: userID, ItemID: itemA, Rating: spacedrep.RatingGood, MasteryAfter: 1, ReviewedAt: now,
	}))
	history, err := events.QueryReviewEvents(ctx, userID, review.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, spacedrep.RatingGood, history[0].Rating)

	existed, err := paths.DeletePath(ctx, pathID)
	require.NoError(t, err)
	assert.True(t, existed)

	recs, err := progress.ListProgressForUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
