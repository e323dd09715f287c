package render

import (
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rfm/internal/state"
	textutil "github.com/kk-code-lab/rfm/internal/textutil"
)

// FlashDuration is how long the status line stays highlighted after a yank.
const FlashDuration = 100 * time.Millisecond

const (
	headerText     = "rfm"
	sizeColumn     = 6
	modifiedColumn = len(modifiedLayout)
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	types  typeCache
	now    func() time.Time
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		now:    time.Now,
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	if r.screen == nil || state == nil {
		return
	}

	theme := ThemeFor(state.DarkMode)
	r.screen.Clear()
	r.screen.HideCursor()
	w, h := r.screen.Size()

	if state.HelpVisible {
		r.drawHelpOverlay(state, theme, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, theme, w)
	r.drawList(state, theme, w, h)
	r.drawStatusLine(state, theme, w, h)
	r.drawFooter(state, theme, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar: title, current path and disk usage.
func (r *Renderer) drawHeader(state *statepkg.AppState, theme ColorTheme, w int) {
	headerStyle := tcell.StyleDefault.Background(theme.HeaderBg).Foreground(theme.HeaderFg)
	r.fillRow(0, 0, w, headerStyle)

	endX := r.drawTextLine(0, 0, w, headerText+" ", headerStyle.Bold(true))

	disk := formatDiskUsage(state.DiskUsage())
	diskWidth := textutil.Width(disk)
	pathWidth := w - endX
	if disk != "" && pathWidth > diskWidth+1 {
		pathWidth -= diskWidth + 1
		r.drawTextLine(w-diskWidth, 0, diskWidth, disk, headerStyle)
	}

	path := textutil.Sanitize(state.CurrentPath)
	r.drawTextLine(endX, 0, pathWidth, textutil.TruncateLeft(path, pathWidth), headerStyle)
}

// drawList renders the active view between the header and the status line.
func (r *Renderer) drawList(state *statepkg.AppState, theme ColorTheme, w, h int) {
	baseStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	listStartY := 1
	bottomLimit := h - 2
	for y := listStartY; y < bottomLimit; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	view := state.DisplayEntries()
	if len(view) == 0 {
		if listStartY < bottomLimit {
			r.drawTextLine(1, listStartY, w-1, emptyViewText(state), baseStyle.Foreground(theme.MetaFg))
		}
		return
	}

	showModified := w >= 60
	showSize := w >= 30
	metaWidth := 0
	if showSize {
		metaWidth += sizeColumn + 1
	}
	if showModified {
		metaWidth += modifiedColumn + 2
	}
	nameWidth := w - 3 - metaWidth
	searching := state.SearchQuery != ""

	y := listStartY
	for idx := state.ScrollOffset; idx < len(view) && y < bottomLimit; idx++ {
		entry := view[idx]
		isSelected := idx == state.SelectedIndex

		rowStyle := r.entryStyle(entry, isSelected, theme, baseStyle)
		metaStyle := rowStyle
		if !isSelected {
			metaStyle = baseStyle.Foreground(theme.MetaFg)
		}
		r.fillRow(0, y, w, rowStyle)

		icon := " "
		if entry.IsSymlink {
			icon = "@"
		} else if entry.IsDir {
			icon = "/"
		}

		name := entry.Name
		if searching {
			if rel, err := filepath.Rel(state.CurrentPath, entry.Path); err == nil {
				name = rel
			}
		}
		name = textutil.Sanitize(name)
		if entry.Path == state.Clipboard {
			name += " ⧉"
		}

		x := r.drawTextLine(0, y, w, " "+icon+" ", rowStyle)
		if nameWidth > 0 {
			r.drawTextLine(x, y, nameWidth, textutil.Truncate(name, nameWidth), rowStyle)
		}

		x = 3 + max(nameWidth, 0)
		if showSize {
			size := formatSize(entry.Size)
			pad := sizeColumn - textutil.Width(size)
			x = r.drawTextLine(x+1+max(pad, 0), y, sizeColumn, size, metaStyle)
		}
		if showModified {
			r.drawTextLine(x+2, y, modifiedColumn, formatModified(entry.Modified), metaStyle)
		}
		y++
	}
}

func (r *Renderer) entryStyle(entry statepkg.FileEntry, isSelected bool, theme ColorTheme, base tcell.Style) tcell.Style {
	var style tcell.Style
	switch {
	case isSelected:
		return tcell.StyleDefault.Background(theme.SelectionBg).Foreground(theme.SelectionFg)
	case entry.IsSymlink:
		style = base.Foreground(theme.SymlinkFg)
	case entry.IsDir:
		style = base.Foreground(theme.DirectoryFg).Bold(true)
	default:
		style = base.Foreground(theme.FileFg)
	}
	if entry.IsHidden() {
		style = style.Foreground(theme.HiddenFg)
	}
	return style
}

func emptyViewText(state *statepkg.AppState) string {
	switch {
	case state.SearchQuery != "" && state.SearchPending():
		return "searching…"
	case state.SearchQuery != "":
		return "no matches"
	default:
		return "(empty)"
	}
}

// drawStatusLine renders the row above the footer: the prompt or search
// input when one is open, otherwise the entry under the cursor.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, theme ColorTheme, w, h int) {
	y := h - 2
	if y < 1 {
		return
	}

	style := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	if !state.LastYankTime.IsZero() && r.now().Sub(state.LastYankTime) < FlashDuration {
		style = tcell.StyleDefault.Background(theme.FlashBg).Foreground(theme.FlashFg)
	}
	r.fillRow(0, y, w, style)
	cursorStyle := style.Reverse(true)

	switch {
	case state.Prompt != nil:
		r.drawPrompt(state.Prompt, y, w, style, cursorStyle)

	case state.SearchActive || state.SearchQuery != "":
		x := r.drawTextLine(0, y, w, "/"+textutil.Sanitize(state.SearchQuery), style)
		if state.SearchActive {
			x = r.drawStyledRune(x, y, w, ' ', cursorStyle)
		}
		r.drawTextLine(x+2, y, w-x-2, formatSearchStatus(state), style.Foreground(theme.MetaFg))

	default:
		entry := state.CurrentEntry()
		if entry == nil {
			return
		}
		details := r.entryDetails(entry)
		detailsWidth := textutil.Width(details)
		pathWidth := w
		if detailsWidth+2 < w/2 {
			pathWidth = w - detailsWidth - 2
			r.drawTextLine(w-detailsWidth, y, detailsWidth, details, style.Foreground(theme.MetaFg))
		}
		path := textutil.Sanitize(entry.Path)
		r.drawTextLine(0, y, pathWidth, textutil.TruncateLeft(path, pathWidth), style)
	}
}

func (r *Renderer) drawPrompt(p *statepkg.Prompt, y, w int, style, cursorStyle tcell.Style) {
	var label string
	switch p.Kind {
	case statepkg.PromptRename:
		label = "Rename to: "
	case statepkg.PromptCreateDirectory:
		label = "New folder: "
	case statepkg.PromptConfirmDelete:
		label = "Delete " + textutil.Sanitize(filepath.Base(p.Target)) + "? (y/n)"
		r.drawTextLine(0, y, w, textutil.Truncate(label, w), style.Bold(true))
		return
	}

	x := r.drawTextLine(0, y, w, label, style.Bold(true))
	for i, ru := range p.Input {
		s := style
		if i == p.Cursor {
			s = cursorStyle
		}
		x = r.drawStyledRune(x, y, w, printableRune(ru), s)
	}
	if p.Cursor >= len(p.Input) {
		r.drawStyledRune(x, y, w, ' ', cursorStyle)
	}
}

// drawFooter renders the last row: the latest status message followed by
// key hints.
func (r *Renderer) drawFooter(state *statepkg.AppState, theme ColorTheme, w, h int) {
	y := h - 1
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Background(theme.FooterBg).Foreground(theme.FooterFg)
	r.fillRow(0, y, w, style)

	x := 0
	if state.StatusMessage != "" {
		msgStyle := style.Bold(true)
		if state.LastError != nil {
			msgStyle = msgStyle.Foreground(theme.ErrorFg)
		}
		x = r.drawTextLine(0, y, w, " "+textutil.Sanitize(state.StatusMessage)+" ", msgStyle)
		x = r.drawTextLine(x, y, w-x, "│", style)
	}

	help := textutil.Sanitize(buildFooterHelpText(state))
	r.drawTextLine(x, y, w-x, textutil.Truncate(help, w-x), style)
}

func printableRune(ru rune) rune {
	if ru < 0x20 || ru == 0x7f {
		return '?'
	}
	return ru
}
