package tui

import "github.com/mattn/go-runewidth"

// Truncate shortens s to at most max display cells, appending an ellipsis
// when anything was cut. Widths are measured in terminal cells, so emoji
// and wide runes count for two.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return runewidth.Truncate(s, max, "…")
}

// Pad truncates or right-pads s to exactly width display cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
