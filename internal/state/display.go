package state

import "sort"

// chromeRows is the number of screen rows not used by the listing: the
// header, the status line and the footer.
const chromeRows = 3

// DisplayEntries returns the active view: search results while a query is
// set, the directory listing otherwise. Listings show directories first,
// then files, each by name; search results keep their path order.
func (s *AppState) DisplayEntries() []FileEntry {
	if s.displayValid {
		return s.displayCache
	}

	var view []FileEntry
	if s.SearchQuery != "" {
		view = append(view, s.SearchResults...)
	} else {
		view = append(view, s.Entries...)
		sort.SliceStable(view, func(i, j int) bool {
			if view[i].IsDir != view[j].IsDir {
				return view[i].IsDir
			}
			return view[i].Name < view[j].Name
		})
	}

	s.displayCache = view
	s.displayValid = true
	return view
}

// CurrentEntry returns the entry under the cursor, or nil for an empty view.
func (s *AppState) CurrentEntry() *FileEntry {
	view := s.DisplayEntries()
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(view) {
		return nil
	}
	return &view[s.SelectedIndex]
}

// ListHeight is the number of entries that fit on screen.
func (s *AppState) ListHeight() int {
	h := s.ScreenHeight - chromeRows
	if h < 1 {
		return 1
	}
	return h
}

// MoveCursor moves the cursor by delta rows, clamped to the view, and
// selects the entry it lands on.
func (s *AppState) MoveCursor(delta int) {
	s.SelectedIndex += delta
	s.clampSelection()
	if entry := s.CurrentEntry(); entry != nil {
		s.SelectedFile = entry.Path
	}
}

// MoveCursorTo places the cursor on index, clamped to the view.
func (s *AppState) MoveCursorTo(index int) {
	s.SelectedIndex = index
	s.MoveCursor(0)
}

func (s *AppState) selectPath(path string) bool {
	if path == "" {
		return false
	}
	for i, entry := range s.DisplayEntries() {
		if entry.Path == path {
			s.SelectedIndex = i
			s.SelectedFile = path
			s.updateScrollVisibility()
			return true
		}
	}
	return false
}

func (s *AppState) clampSelection() {
	n := len(s.DisplayEntries())
	if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.updateScrollVisibility()
}

func (s *AppState) updateScrollVisibility() {
	visibleLines := s.ListHeight()

	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.SelectedIndex - visibleLines + 1
	}

	maxOffset := len(s.DisplayEntries()) - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}
