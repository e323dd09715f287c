package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks where text was cut.
const Ellipsis = "…"

// Width is the number of terminal cells text occupies.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most width cells, ending with an ellipsis
// when something was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	if width == 1 {
		return Ellipsis
	}
	return runewidth.Truncate(text, width, Ellipsis)
}

// TruncateLeft keeps the end of text, which for paths is the useful part,
// and starts with an ellipsis when something was cut.
func TruncateLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	if width == 1 {
		return Ellipsis
	}

	runes := []rune(text)
	available := width - 1
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > available {
			break
		}
		used += w
		start--
	}
	return Ellipsis + string(runes[start:])
}

// PadRight pads text with spaces to exactly width cells, truncating first
// when it is too long.
func PadRight(text string, width int) string {
	text = Truncate(text, width)
	if gap := width - Width(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}
