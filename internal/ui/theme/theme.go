package theme

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathrecall/internal/spacedrep"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Cards
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Answer = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Feedback
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Progress bars
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// ProgressBar renders ratio (0..1) as a bar width cells wide.
func ProgressBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))
	return ProgressFilled.Render(strings.Repeat("█", filled)) +
		ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

// StatusStyle returns the style used for a review status label.
func StatusStyle(s spacedrep.ReviewStatus) lipgloss.Style {
	switch s {
	case spacedrep.StatusDue:
		return Warning
	case spacedrep.StatusMastered:
		return Correct
	case spacedrep.StatusLearning:
		return Label
	default:
		return Subtitle
	}
}

// RatingStyle returns the style used to echo a rating back to the learner.
func RatingStyle(r spacedrep.Rating) lipgloss.Style {
	if r.Success() {
		return Correct
	}
	return Incorrect
}
