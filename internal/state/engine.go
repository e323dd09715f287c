package state

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	fsutil "github.com/kk-code-lab/rfm/internal/fs"
	"github.com/kk-code-lab/rfm/internal/search"
)

// Navigate makes dir the current directory. Anything that is not an existing
// directory is rejected and leaves the state untouched.
func (s *AppState) Navigate(dir string) Outcome {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Rejected
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		s.log.Debug("navigation rejected", zap.String("path", abs))
		return Rejected
	}
	entries, err := fsutil.List(abs, s.onSkip)
	if err != nil {
		s.log.Debug("navigation rejected", zap.String("path", abs), zap.Error(err))
		return Rejected
	}

	s.CurrentPath = abs
	s.Entries = entries
	s.SelectedFile = ""
	s.clearSearch()
	s.SelectedIndex = 0
	s.ScrollOffset = 0
	s.invalidateDisplay()
	return Accepted
}

// NavigateUp moves to the parent of the current directory. At the volume
// root there is no parent and the request is rejected.
func (s *AppState) NavigateUp() Outcome {
	if s.CurrentPath == "" {
		return Rejected
	}
	parent := filepath.Dir(s.CurrentPath)
	if parent == s.CurrentPath {
		return Rejected
	}

	child := s.CurrentPath
	if s.Navigate(parent) != Accepted {
		return Rejected
	}
	s.selectPath(child)
	return Accepted
}

// Refresh re-reads the current directory. When it was removed behind our
// back the nearest existing ancestor becomes current instead.
func (s *AppState) Refresh() {
	if s.CurrentPath == "" {
		return
	}

	dir := s.CurrentPath
	for {
		entries, err := fsutil.List(dir, s.onSkip)
		if err == nil {
			if dir != s.CurrentPath {
				s.log.Info("current directory vanished",
					zap.String("path", s.CurrentPath),
					zap.String("fallback", dir),
				)
				s.CurrentPath = dir
				s.SelectedFile = ""
				s.clearSearch()
			}
			s.Entries = entries
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			s.fail("refresh failed", err, zap.String("path", s.CurrentPath))
			s.Entries = nil
			break
		}
		dir = parent
	}

	s.invalidateDisplay()
	s.clampSelection()
}

// Select marks path as the selected file. Only paths shown in the active
// view can be selected.
func (s *AppState) Select(path string) bool {
	return s.selectPath(path)
}

// CopyToClipboard remembers path as the source of the next paste.
func (s *AppState) CopyToClipboard(path string) {
	if path == "" {
		return
	}
	s.Clipboard = path
	s.setStatus("copied " + filepath.Base(path))
}

// Paste copies the clipboard entry into the current directory. The
// clipboard is kept so the same entry can be pasted again.
func (s *AppState) Paste() error {
	if s.Clipboard == "" {
		return nil
	}

	dst, err := s.ops.Paste(s.Clipboard, s.CurrentPath)
	if err != nil {
		s.fail("paste failed", err,
			zap.String("source", s.Clipboard),
			zap.String("destination", dst),
		)
	} else {
		s.setStatus("pasted " + filepath.Base(dst))
	}
	s.Refresh()
	if err == nil {
		s.selectPath(dst)
	}
	return err
}

// Delete removes path. The listing is refreshed either way so a partial
// removal shows up, and a selection pointing at path is cleared.
func (s *AppState) Delete(path string) error {
	err := s.ops.Delete(path)
	if err != nil {
		s.fail("delete failed", err, zap.String("path", path))
	} else {
		s.setStatus("deleted " + filepath.Base(path))
	}

	if s.SelectedFile == path {
		s.SelectedFile = ""
	}
	s.pruneSearchResults(path)
	s.Refresh()
	return err
}

// Rename gives path a new name inside the same directory. SelectedFile is
// not rewritten and goes stale if it pointed at path.
func (s *AppState) Rename(path, newName string) error {
	newPath, err := s.ops.Rename(path, newName)
	if err != nil {
		s.fail("rename failed", err, zap.String("path", path), zap.String("name", newName))
		return err
	}

	s.setStatus("renamed to " + filepath.Base(newPath))
	s.pruneSearchResults(path)
	s.Refresh()
	return nil
}

// CreateDirectory creates name under the current directory.
func (s *AppState) CreateDirectory(name string) error {
	path, err := s.ops.CreateDirectory(s.CurrentPath, name)
	if err != nil {
		s.fail("create directory failed", err,
			zap.String("parent", s.CurrentPath),
			zap.String("name", name),
		)
		return err
	}

	s.setStatus("created " + filepath.Base(path))
	s.Refresh()
	if s.SearchQuery == "" {
		s.selectPath(path)
	}
	return nil
}

// SetSearchQuery replaces the search query. An empty query drops the
// results and the view falls back to Entries; anything else searches the
// current directory tree, subject to the searcher's debounce interval.
func (s *AppState) SetSearchQuery(query string) {
	s.SearchQuery = query
	s.SelectedIndex = 0
	s.ScrollOffset = 0
	s.invalidateDisplay()

	if query == "" {
		s.SearchResults = nil
		return
	}
	s.runSearch()
}

// SearchPending reports whether the shown results were computed for an
// older query because the last search was debounced.
func (s *AppState) SearchPending() bool {
	return s.SearchQuery != "" && s.searchedFor != s.searchKey()
}

// RetrySearch re-runs a debounced search once the interval allows it.
func (s *AppState) RetrySearch() {
	if !s.SearchPending() {
		return
	}
	s.runSearch()
}

// SearchInterval is the minimum spacing between two search walks.
func (s *AppState) SearchInterval() time.Duration {
	return s.searcher.Delay()
}

// DiskUsage reports used and total bytes of the volume holding the current
// directory, or zeros when the OS cannot tell.
func (s *AppState) DiskUsage() (used, total uint64) {
	return fsutil.DiskUsage(s.CurrentPath)
}

// Open hands path to the default application.
func (s *AppState) Open(path string) error {
	if err := s.launcher.Open(path); err != nil {
		s.fail("open failed", err, zap.String("path", path))
		return err
	}
	s.setStatus("opened " + filepath.Base(path))
	return nil
}

// OpenTerminal starts a terminal in path, or in its directory when path is
// a file.
func (s *AppState) OpenTerminal(path string) error {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	if err := s.launcher.OpenTerminal(dir); err != nil {
		s.fail("terminal failed", err, zap.String("path", dir))
		return err
	}
	s.setStatus("terminal opened in " + dir)
	return nil
}

func (s *AppState) runSearch() {
	now := s.now()
	if !s.searcher.Due(now, s.LastSearchTime) {
		return
	}
	prev := search.Snapshot{Results: s.SearchResults, LastRun: s.LastSearchTime}
	next := s.searcher.Search(s.CurrentPath, s.SearchQuery, now, prev)

	s.SearchResults = next.Results
	s.LastSearchTime = next.LastRun
	s.searchedFor = s.searchKey()
	s.invalidateDisplay()
	s.clampSelection()
}

func (s *AppState) searchKey() string {
	return s.CurrentPath + "\x00" + s.SearchQuery
}

func (s *AppState) clearSearch() {
	s.SearchQuery = ""
	s.SearchResults = nil
	s.searchedFor = ""
	s.SearchActive = false
}

// pruneSearchResults drops results at or below path that no longer exist.
func (s *AppState) pruneSearchResults(path string) {
	if len(s.SearchResults) == 0 {
		return
	}
	prefix := path + string(filepath.Separator)
	kept := s.SearchResults[:0]
	for _, entry := range s.SearchResults {
		if entry.Path == path || strings.HasPrefix(entry.Path, prefix) {
			if _, err := os.Lstat(entry.Path); err != nil {
				continue
			}
		}
		kept = append(kept, entry)
	}
	s.SearchResults = kept
	s.invalidateDisplay()
}
