package theme

import (
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathrecall/internal/spacedrep"
)

func TestProgressBarWidth(t *testing.T) {
	tests := []struct {
		ratio float64
		width int
	}{
		{0, 10},
		{0.5, 10},
		{1, 10},
		{1.7, 8},
		{-1, 8},
		{0.33, 3},
	}
	for _, tt := range tests {
		got := lipgloss.Width(ProgressBar(tt.ratio, tt.width))
		if got != tt.width {
			t.Errorf("ProgressBar(%v, %d) width = %d, want %d", tt.ratio, tt.width, got, tt.width)
		}
	}
	if got := ProgressBar(0.5, 0); got != "" {
		t.Errorf("ProgressBar(0.5, 0) = %q, want empty", got)
	}
}

func TestRatingStyle(t *testing.T) {
	if RatingStyle(spacedrep.RatingGood).GetForeground() != Success {
		t.Error("good rating should render as success")
	}
	if RatingStyle(spacedrep.RatingHard).GetForeground() != Error {
		t.Error("hard rating should render as error")
	}
}
