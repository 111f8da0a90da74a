package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncateStr truncates a string to maxLen runes with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// padLeft right-aligns s in a column of width cells
func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// padRight left-aligns s in a column of width cells
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// clamp limits v to [lo, hi]; an empty range yields lo
func clamp(v, lo, hi int) int {
	if v < lo || hi < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
