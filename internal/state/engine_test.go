package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingLauncher struct {
	opened    []string
	terminals []string
	err       error
}

func (l *recordingLauncher) Open(path string) error {
	l.opened = append(l.opened, path)
	return l.err
}

func (l *recordingLauncher) OpenTerminal(dir string) error {
	l.terminals = append(l.terminals, dir)
	return l.err
}

type harness struct {
	state    *AppState
	clock    *fakeClock
	launcher *recordingLauncher
	logs     *observer.ObservedLogs
	root     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	core, logs := observer.New(zapcore.DebugLevel)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	launcher := &recordingLauncher{}

	s := NewAppState(Options{
		Launcher: launcher,
		Logger:   zap.New(core),
		Clock:    clock.Now,
	})
	s.ScreenWidth, s.ScreenHeight = 80, 24
	require.Equal(t, Accepted, s.Navigate(root))

	return &harness{state: s, clock: clock, launcher: launcher, logs: logs, root: root}
}

func (h *harness) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(h.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestNavigateToFileIsRejected(t *testing.T) {
	h := newHarness(t)
	file := h.write(t, "a.txt", "a")

	assert.Equal(t, Rejected, h.state.Navigate(file))
	assert.Equal(t, h.root, h.state.CurrentPath)
}

func TestNavigateToMissingPathIsRejected(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, Rejected, h.state.Navigate(filepath.Join(h.root, "nope")))
	assert.Equal(t, h.root, h.state.CurrentPath)
}

func TestNavigateLoadsEntriesAndClearsSearch(t *testing.T) {
	h := newHarness(t)
	h.write(t, "sub/inner.txt", "xyz")
	h.state.SetSearchQuery("inner")
	require.NotEmpty(t, h.state.SearchResults)

	sub := filepath.Join(h.root, "sub")
	require.Equal(t, Accepted, h.state.Navigate(sub))

	assert.Equal(t, sub, h.state.CurrentPath)
	assert.Equal(t, []string{"inner.txt"}, names(h.state.Entries))
	assert.Empty(t, h.state.SearchQuery)
	assert.Empty(t, h.state.SearchResults)
}

func TestNavigateUpSelectsPreviousDirectory(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "a")
	h.write(t, "zdir/b.txt", "b")
	require.Equal(t, Accepted, h.state.Navigate(filepath.Join(h.root, "zdir")))

	require.Equal(t, Accepted, h.state.NavigateUp())
	assert.Equal(t, h.root, h.state.CurrentPath)
	assert.Equal(t, filepath.Join(h.root, "zdir"), h.state.SelectedFile)
}

func TestRefreshClimbsOutOfRemovedDirectory(t *testing.T) {
	h := newHarness(t)
	h.write(t, "gone/deeper/x.txt", "x")
	require.Equal(t, Accepted, h.state.Navigate(filepath.Join(h.root, "gone", "deeper")))

	require.NoError(t, os.RemoveAll(filepath.Join(h.root, "gone")))
	h.state.Refresh()

	assert.Equal(t, h.root, h.state.CurrentPath)
	assert.Empty(t, h.state.Entries)
}

func TestSelectOnlyAcceptsVisibleEntries(t *testing.T) {
	h := newHarness(t)
	a := h.write(t, "a.txt", "a")
	h.state.Refresh()

	assert.True(t, h.state.Select(a))
	assert.Equal(t, a, h.state.SelectedFile)
	assert.False(t, h.state.Select(filepath.Join(h.root, "missing.txt")))
	assert.Equal(t, a, h.state.SelectedFile)
}

func TestDeleteSelectedFileClearsSelection(t *testing.T) {
	h := newHarness(t)
	a := h.write(t, "a.txt", "a")
	h.write(t, "b.txt", "b")
	h.state.Refresh()
	require.True(t, h.state.Select(a))

	require.NoError(t, h.state.Delete(a))

	assert.Empty(t, h.state.SelectedFile)
	assert.Equal(t, []string{"b.txt"}, names(h.state.DisplayEntries()))
}

func TestDeleteFailureIsLoggedAndRefreshes(t *testing.T) {
	h := newHarness(t)
	missing := filepath.Join(h.root, "ghost")

	require.Error(t, h.state.Delete(missing))

	assert.Equal(t, 1, h.logs.FilterMessage("delete failed").Len())
	assert.Error(t, h.state.LastError)
	assert.Equal(t, "delete failed", h.state.StatusMessage)
}

func TestDeletePrunesSearchResults(t *testing.T) {
	h := newHarness(t)
	h.write(t, "logs/app.log", "1")
	h.write(t, "other.log", "2")
	h.state.SetSearchQuery("log")
	require.Len(t, h.state.SearchResults, 3)

	require.NoError(t, h.state.Delete(filepath.Join(h.root, "logs")))

	assert.Equal(t, []string{"other.log"}, names(h.state.SearchResults))
}

func TestRenameLeavesSelectionStale(t *testing.T) {
	h := newHarness(t)
	a := h.write(t, "a.txt", "a")
	h.state.Refresh()
	require.True(t, h.state.Select(a))

	require.NoError(t, h.state.Rename(a, "b.txt"))

	assert.Equal(t, []string{"b.txt"}, names(h.state.Entries))
	assert.Equal(t, a, h.state.SelectedFile)
}

func TestRenameOntoExistingEntryFailsAndLogs(t *testing.T) {
	h := newHarness(t)
	a := h.write(t, "a.txt", "a")
	h.write(t, "b.txt", "b")
	h.state.Refresh()

	require.Error(t, h.state.Rename(a, "b.txt"))

	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, names(h.state.Entries))
	assert.Equal(t, 1, h.logs.FilterMessage("rename failed").Len())
}

func TestCreateDirectory(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.state.CreateDirectory("New Folder"))
	assert.DirExists(t, filepath.Join(h.root, "New Folder"))
	assert.Equal(t, filepath.Join(h.root, "New Folder"), h.state.SelectedFile)

	require.Error(t, h.state.CreateDirectory("New Folder"))
	assert.Equal(t, 1, h.logs.FilterMessage("create directory failed").Len())
}

func TestClipboardSurvivesNavigationAndPaste(t *testing.T) {
	h := newHarness(t)
	src := h.write(t, "src/note.txt", "note")
	h.write(t, "dst/.keep", "")

	h.state.CopyToClipboard(src)
	require.Equal(t, Accepted, h.state.Navigate(filepath.Join(h.root, "dst")))
	require.NoError(t, h.state.Paste())

	assert.Equal(t, src, h.state.Clipboard)
	data, err := os.ReadFile(filepath.Join(h.root, "dst", "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "note", string(data))
	assert.Contains(t, names(h.state.Entries), "note.txt")

	// a second paste overwrites the same destination
	require.NoError(t, h.state.Paste())
	assert.Len(t, h.state.Entries, 2)
}

func TestPasteWithEmptyClipboardIsNoop(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.state.Paste())
	assert.Empty(t, h.state.Entries)
}

func TestSearchDebounce(t *testing.T) {
	h := newHarness(t)
	h.write(t, "foo.rs", "")
	h.write(t, "BAR.RS", "")
	h.write(t, "baz.txt", "")

	h.state.SetSearchQuery("rs")
	first := names(h.state.SearchResults)
	stamp := h.state.LastSearchTime
	assert.ElementsMatch(t, []string{"foo.rs", "BAR.RS"}, first)

	h.clock.Advance(150 * time.Millisecond)
	h.state.SetSearchQuery("txt")
	assert.Equal(t, first, names(h.state.SearchResults))
	assert.Equal(t, stamp, h.state.LastSearchTime)
	assert.True(t, h.state.SearchPending())

	h.clock.Advance(250 * time.Millisecond)
	h.state.RetrySearch()
	assert.Equal(t, []string{"baz.txt"}, names(h.state.SearchResults))
	assert.Equal(t, h.clock.now, h.state.LastSearchTime)
	assert.False(t, h.state.SearchPending())
}

func TestEmptyQueryFallsBackToEntries(t *testing.T) {
	h := newHarness(t)
	h.write(t, "a.txt", "")
	h.write(t, "deep/a2.txt", "")
	h.state.Refresh()

	h.state.SetSearchQuery("a")
	assert.Len(t, h.state.DisplayEntries(), 2)

	h.state.SetSearchQuery("")
	assert.Empty(t, h.state.SearchResults)
	assert.Equal(t, []string{"deep", "a.txt"}, names(h.state.DisplayEntries()))
}

func TestOpenTerminalOnFileUsesParent(t *testing.T) {
	h := newHarness(t)
	file := h.write(t, "a.txt", "")

	require.NoError(t, h.state.OpenTerminal(file))
	require.NoError(t, h.state.Open(file))

	assert.Equal(t, []string{h.root}, h.launcher.terminals)
	assert.Equal(t, []string{file}, h.launcher.opened)
}

func TestLaunchFailureIsLoggedNotFatal(t *testing.T) {
	h := newHarness(t)
	h.launcher.err = errors.New("no handler")

	assert.Error(t, h.state.Open(filepath.Join(h.root, "x")))
	assert.Equal(t, 1, h.logs.FilterMessage("open failed").Len())
	assert.Equal(t, h.root, h.state.CurrentPath)
}

func TestDiskUsageOfCurrentDirectory(t *testing.T) {
	h := newHarness(t)
	used, total := h.state.DiskUsage()
	assert.LessOrEqual(t, used, total)
}
