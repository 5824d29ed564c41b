package spacedrep

import "time"

// Rating is the learner's recall quality for one review.
type Rating int

const (
	RatingHard Rating = 1
	RatingGood Rating = 3
	RatingEasy Rating = 5
)

// SuccessThreshold is the lowest rating counted as a successful recall.
const SuccessThreshold Rating = 3

// Success reports whether the rating counts as a successful recall.
// Out-of-range values are accepted and simply compared against the threshold.
func (r Rating) Success() bool {
	return r >= SuccessThreshold
}

func (r Rating) String() string {
	switch r {
	case RatingHard:
		return "hard"
	case RatingGood:
		return "good"
	case RatingEasy:
		return "easy"
	}
	if r.Success() {
		return "pass"
	}
	return "fail"
}

// Advance computes the record that follows a rating given at now.
// A nil prior is a first encounter: mastery 0 and no reviews.
//
// Mastery moves up one level on success and never moves down. The next
// review is scheduled by calendar-day arithmetic in now's location, so a
// review at 09:00 stays at 09:00 local time across DST changes.
func Advance(prior *ProgressRecord, rating Rating, now time.Time) ProgressRecord {
	var next ProgressRecord
	if prior != nil {
		next = *prior
	}

	if rating.Success() {
		next.MasteryLevel++
	}
	next.MasteryLevel = min(max(next.MasteryLevel, 0), MaxMastery)

	next.ReviewCount++
	next.LastReviewedAt = now
	next.NextReviewAt = now.AddDate(0, 0, IntervalDays(next.MasteryLevel))
	return next
}
