package cmd

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// cell fits s into a table column of the given display width. Longer text
// is cut on a character boundary and ends in "...".
func cell(s string, width int) string {
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "...")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
