package review

import (
	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/spacedrep"
)

// Entry is one position of a review queue.
type Entry struct {
	Item content.Item
	// Record is the progress snapshot taken when the queue was built.
	// Nil for items never rated.
	Record *spacedrep.ProgressRecord
}

// Queue is a finite cursor over entries for one user. It is a snapshot:
// rating items does not add or remove entries, and a fresh load derives a
// new queue. Not safe for concurrent use.
type Queue struct {
	userID  string
	entries []Entry
	pos     int
}

func newQueue(userID string, entries []Entry, start int) *Queue {
	if start < 0 || start > len(entries) {
		start = 0
	}
	return &Queue{userID: userID, entries: entries, pos: start}
}

// UserID returns the user the queue belongs to.
func (q *Queue) UserID() string { return q.userID }

// Len returns the total number of entries.
func (q *Queue) Len() int { return len(q.entries) }

// Position returns the index of the current entry. Equal to Len when done.
func (q *Queue) Position() int { return q.pos }

// Remaining returns the number of entries not yet rated, current included.
func (q *Queue) Remaining() int { return len(q.entries) - q.pos }

// Done reports whether every entry has been rated.
func (q *Queue) Done() bool { return q.pos >= len(q.entries) }

// Current returns the entry awaiting a rating.
func (q *Queue) Current() (Entry, bool) {
	if q.Done() {
		return Entry{}, false
	}
	return q.entries[q.pos], true
}

// Entries returns a copy of all entries in queue order.
func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// advance moves the cursor past the current entry and returns it.
func (q *Queue) advance() (Entry, bool) {
	e, ok := q.Current()
	if ok {
		q.pos++
	}
	return e, ok
}
