package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rfm/internal/state"
	textutil "github.com/kk-code-lab/rfm/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	themeDesc := "Switch to dark theme"
	if state != nil && state.DarkMode {
		themeDesc = "Switch to light theme"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ or k/j", desc: "Move selection"},
				{keys: "↵ or →", desc: "Enter directory / open file"},
				{keys: "← or Backspace", desc: "Parent directory"},
				{keys: "~", desc: "Go home"},
				{keys: "PgUp/PgDn", desc: "Page through the list"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Search names below this directory"},
				{keys: "↵", desc: "Keep results and browse them"},
				{keys: "Esc", desc: "Clear search"},
			},
		},
		{
			title: "Files",
			entries: []helpOverlayEntry{
				{keys: "c", desc: "Copy to clipboard"},
				{keys: "v", desc: "Paste into this directory"},
				{keys: "d or Delete", desc: "Delete (asks first)"},
				{keys: "R or F2", desc: "Rename"},
				{keys: "n", desc: "New folder"},
				{keys: "o", desc: "Open with default application"},
				{keys: "t", desc: "Open terminal here"},
				{keys: "y", desc: "Yank path to system clipboard"},
			},
		},
		{
			title: "View",
			entries: []helpOverlayEntry{
				{keys: "r", desc: "Refresh directory"},
				{keys: "T", desc: themeDesc},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend to the shell"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	return fmt.Sprintf("  %s %s", textutil.PadRight(entry.keys, 16), entry.desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, theme ColorTheme, w, h int) {
	baseStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := tcell.StyleDefault.Background(theme.HeaderBg).Foreground(theme.HeaderFg).Bold(true)
	r.fillRow(0, 0, w, headerStyle)
	titleStart := 0
	if titleWidth := textutil.Width(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range buildHelpOverlayLines(state) {
		if row >= maxRow {
			break
		}
		text := textutil.Truncate(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 1 {
		footerStyle := tcell.StyleDefault.Background(theme.FooterBg).Foreground(theme.FooterFg)
		r.fillRow(0, h-1, w, footerStyle)
		r.drawTextLine(0, h-1, w, textutil.Truncate("? toggle · Esc/q close", w), footerStyle)
	}
}
