package review

import (
	"testing"

	"github.com/abhisek/pathrecall/internal/spacedrep"
)

func TestSummarizeHistory(t *testing.T) {
	events := []HistoryEvent{
		{Rating: spacedrep.RatingGood, MasteryBefore: 0, MasteryAfter: 1},
		{Rating: spacedrep.RatingHard, MasteryBefore: 1, MasteryAfter: 1},
		{Rating: spacedrep.RatingEasy, MasteryBefore: 5, MasteryAfter: 5}, // capped
		{Rating: spacedrep.RatingEasy, MasteryBefore: 2, MasteryAfter: 3},
	}

	got := SummarizeHistory(events)
	want := HistoryStats{Reviews: 4, Successes: 3, Promoted: 2}
	if got != want {
		t.Errorf("SummarizeHistory = %+v, want %+v", got, want)
	}
	if rate := got.SuccessRate(); rate != 0.75 {
		t.Errorf("SuccessRate = %v, want 0.75", rate)
	}
}

func TestSummarizeHistory_Empty(t *testing.T) {
	got := SummarizeHistory(nil)
	if got != (HistoryStats{}) {
		t.Errorf("SummarizeHistory(nil) = %+v, want zero", got)
	}
	if rate := got.SuccessRate(); rate != 0 {
		t.Errorf("SuccessRate = %v, want 0", rate)
	}
}
