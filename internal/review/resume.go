package review

import (
	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

// ResumeIndex returns the index of the first item, in presentation order,
// whose ID is not in reviewed. It returns 0 when every item or no item has
// been reviewed, so a finished topic restarts from the top.
func ResumeIndex(items []content.Item, reviewed map[string]bool) int {
	if len(reviewed) == 0 {
		return 0
	}
	for i, it := range items {
		if !reviewed[it.ID] {
			return i
		}
	}
	return 0
}

// ReviewedSet returns the IDs of items that have a progress record.
func ReviewedSet(records []spacedrep.ProgressRecord) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[r.ItemID] = true
	}
	return set
}

// PathProgress summarizes a user's progress through one learning path.
// Completion and mastery are independent signals: a path is complete once
// every item has been rated at least once, whatever its mastery.
type PathProgress struct {
	PathID   string
	Total    int
	Reviewed int // items with any progress record
	Mastered int // items at or above spacedrep.MasteredLevel
	Due      int // reviewed items due now
}

// Complete reports whether every item of the path has been rated.
func (p PathProgress) Complete() bool {
	return p.Total > 0 && p.Reviewed == p.Total
}

// Completion returns the fraction of items rated at least once.
func (p PathProgress) Completion() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Reviewed) / float64(p.Total)
}

// MasteryRatio returns the fraction of items labelled mastered.
func (p PathProgress) MasteryRatio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Mastered) / float64(p.Total)
}
