package spacedrep

import "time"

// ProgressRecord holds the spaced repetition state of one item for one user.
type ProgressRecord struct {
	UserID         string    `json:"user_id"`
	ItemID         string    `json:"item_id"`
	MasteryLevel   int       `json:"mastery_level"`
	ReviewCount    int       `json:"review_count"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
}

// Scheduled reports whether the record carries a next review date.
func (pr *ProgressRecord) Scheduled() bool {
	return !pr.NextReviewAt.IsZero()
}

// IsDue returns true if the item is due for review (at or past the review date).
// The comparison uses the full timestamp, never the calendar date alone.
func (pr *ProgressRecord) IsDue(now time.Time) bool {
	return pr.Scheduled() && !now.Before(pr.NextReviewAt)
}

// OverdueDays returns how many days past due the item is. Returns 0 if not yet due.
func (pr *ProgressRecord) OverdueDays(now time.Time) float64 {
	if !pr.IsDue(now) {
		return 0
	}
	return now.Sub(pr.NextReviewAt).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (pr *ProgressRecord) DaysUntilReview(now time.Time) int {
	if !pr.Scheduled() || pr.IsDue(now) {
		return 0
	}
	return int(pr.NextReviewAt.Sub(now).Hours()/24.0) + 1
}

// CurrentIntervalDays returns the interval that produced NextReviewAt.
func (pr *ProgressRecord) CurrentIntervalDays() int {
	return IntervalDays(pr.MasteryLevel)
}

// IsMastered reports whether the record has reached the mastered label.
func (pr *ProgressRecord) IsMastered() bool {
	return pr.MasteryLevel >= MasteredLevel
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	StatusNew      ReviewStatus = "new"
	StatusLearning ReviewStatus = "learning"
	StatusDue      ReviewStatus = "due"
	StatusMastered ReviewStatus = "mastered"
)

// Status returns the review status for display. A nil record means the
// item has never been rated.
func (pr *ProgressRecord) Status(now time.Time) ReviewStatus {
	if pr == nil || pr.ReviewCount == 0 {
		return StatusNew
	}
	if pr.IsDue(now) {
		return StatusDue
	}
	if pr.IsMastered() {
		return StatusMastered
	}
	return StatusLearning
}
