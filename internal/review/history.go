package review

import (
	"time"

	"github.com/abhisek/pathrecall/internal/spacedrep"
)

// HistoryEvent is one persisted rating from the review history.
type HistoryEvent struct {
	Sequence      int64
	UserID        string
	ItemID        string
	Rating        spacedrep.Rating
	MasteryBefore int
	MasteryAfter  int
	ReviewedAt    time.Time
}

// HistoryQuery filters review history with pagination.
type HistoryQuery struct {
	Limit int       // max results (0 = unlimited)
	After int64     // sequence > After
	From  time.Time // reviewed at or after From
}

// HistoryStats aggregates a slice of history events.
type HistoryStats struct {
	Reviews   int
	Successes int
	Promoted  int // ratings that raised mastery
}

// SuccessRate returns the fraction of successful ratings.
func (h HistoryStats) SuccessRate() float64 {
	if h.Reviews == 0 {
		return 0
	}
	return float64(h.Successes) / float64(h.Reviews)
}

// SummarizeHistory aggregates events.
func SummarizeHistory(events []HistoryEvent) HistoryStats {
	var h HistoryStats
	for _, e := range events {
		h.Reviews++
		if e.Rating.Success() {
			h.Successes++
		}
		if e.MasteryAfter > e.MasteryBefore {
			h.Promoted++
		}
	}
	return h
}
