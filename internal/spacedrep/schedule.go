package spacedrep

// IntervalTable defines the expanding review interval in days, indexed by
// mastery level. Levels beyond the table reuse the last slot.
var IntervalTable = []int{1, 3, 7, 14, 30}

// MaxMastery is the highest mastery level a record can reach.
const MaxMastery = 5

// MasteredLevel is the level from which an item is labelled mastered.
// It is a view label only; mastered items keep being scheduled.
const MasteredLevel = 4

// IntervalDays returns the review interval in days for a mastery level.
func IntervalDays(level int) int {
	if level < 0 {
		level = 0
	}
	if level >= len(IntervalTable) {
		level = len(IntervalTable) - 1
	}
	return IntervalTable[level]
}
