package content

import "time"

// ItemKind is the exercise format of an item.
type ItemKind string

const (
	KindFlashcard ItemKind = "flashcard"
	KindQuiz      ItemKind = "quiz"
	KindFillBlank ItemKind = "fill_blank"
	KindOpenEnded ItemKind = "open_ended"
)

// AllKinds lists every supported item kind.
var AllKinds = []ItemKind{KindFlashcard, KindQuiz, KindFillBlank, KindOpenEnded}

// Valid reports whether k is a known item kind.
func (k ItemKind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Prompt is the learner-facing payload of an item. The scheduler never
// looks inside it.
type Prompt struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// Item is an atomic reviewable unit. Items are immutable once imported.
type Item struct {
	ID       string   `json:"id"`
	PathID   string   `json:"path_id"`
	Topic    string   `json:"topic"`
	Kind     ItemKind `json:"kind"`
	Prompt   Prompt   `json:"prompt"`
	Position int      `json:"position"` // presentation order within the path
}

// Path is a learning path: a topic owned by one user with an ordered set of items.
type Path struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}
