package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rfm/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
	}
	return strings.TrimRight(b.String(), " ")
}

func newTestState(t *testing.T, files map[string]string, w, h int) (*statepkg.AppState, string) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		if strings.HasSuffix(rel, "/") {
			continue
		}
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	state := statepkg.NewAppState(statepkg.Options{})
	require.Equal(t, statepkg.Accepted, state.Navigate(root))
	state.ScreenWidth, state.ScreenHeight = w, h
	return state, root
}

func TestRenderListsDirectoriesFirst(t *testing.T) {
	state, root := newTestState(t, map[string]string{
		"b.txt":   "abc",
		"adir/x":  "12345",
		"c.bin":   "",
		".hidden": "",
	}, 80, 10)
	screen := newTestScreen(t, 80, 10)

	NewRenderer(screen).Render(state)

	header := rowText(screen, 0)
	assert.True(t, strings.HasPrefix(header, "rfm"), "header %q", header)
	assert.Contains(t, header, filepath.Base(root))

	first := rowText(screen, 1)
	assert.True(t, strings.HasPrefix(first, " / adir"), "expected directory first, got %q", first)
	assert.Contains(t, first, "5B", "directory size is recursive")

	row := rowText(screen, 3)
	assert.Contains(t, row, "b.txt")
	assert.Contains(t, row, "3B")

	assert.Contains(t, rowText(screen, 8), "adir", "status line shows the entry under the cursor")
}

func TestRenderSearchShowsRelativePathsAndCount(t *testing.T) {
	state, _ := newTestState(t, map[string]string{
		"deep/nested/main.go": "package main",
		"notes.md":            "",
	}, 80, 10)
	screen := newTestScreen(t, 80, 10)

	state.SearchActive = true
	state.SetSearchQuery("main")
	NewRenderer(screen).Render(state)

	assert.Contains(t, rowText(screen, 1), filepath.Join("deep", "nested", "main.go"))
	status := rowText(screen, 8)
	assert.True(t, strings.HasPrefix(status, "/main"), "status %q", status)
	assert.Contains(t, status, "1 match")
}

func TestRenderEmptyViews(t *testing.T) {
	state, _ := newTestState(t, nil, 60, 8)
	screen := newTestScreen(t, 60, 8)
	renderer := NewRenderer(screen)

	renderer.Render(state)
	assert.Equal(t, " (empty)", rowText(screen, 1))

	state.SetSearchQuery("zzz")
	renderer.Render(state)
	assert.Equal(t, " no matches", rowText(screen, 1))
}

func TestRenderPromptAndStatusMessage(t *testing.T) {
	state, _ := newTestState(t, map[string]string{"a.txt": "a"}, 80, 10)
	screen := newTestScreen(t, 80, 10)

	state.Prompt = &statepkg.Prompt{Kind: statepkg.PromptRename, Input: []rune("b.txt"), Cursor: 5}
	state.StatusMessage = "rename failed"
	NewRenderer(screen).Render(state)

	assert.Equal(t, "Rename to: b.txt", rowText(screen, 8))
	footer := rowText(screen, 9)
	assert.True(t, strings.HasPrefix(footer, " rename failed │"), "footer %q", footer)
}

func TestRenderDeleteConfirmation(t *testing.T) {
	state, root := newTestState(t, map[string]string{"a.txt": "a"}, 80, 10)
	screen := newTestScreen(t, 80, 10)

	state.Prompt = &statepkg.Prompt{Kind: statepkg.PromptConfirmDelete, Target: filepath.Join(root, "a.txt")}
	NewRenderer(screen).Render(state)

	assert.Equal(t, "Delete a.txt? (y/n)", rowText(screen, 8))
}

func TestRenderHelpOverlay(t *testing.T) {
	state, _ := newTestState(t, nil, 60, 30)
	screen := newTestScreen(t, 60, 30)

	state.HelpVisible = true
	NewRenderer(screen).Render(state)

	assert.Contains(t, rowText(screen, 0), "Help")
	assert.Equal(t, "Navigation", strings.TrimSpace(rowText(screen, 2)))
}

func TestRenderWithoutScreenIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRenderer(nil).Render(&statepkg.AppState{})
	})
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1K"},
		{1536, "1.5K"},
		{10 * 1024, "10K"},
		{5 * 1024 * 1024, "5M"},
		{3 << 30, "3G"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.in), "formatSize(%d)", tt.in)
	}
}

func TestFormatDiskUsage(t *testing.T) {
	assert.Empty(t, formatDiskUsage(0, 0), "unknown volume renders nothing")
	assert.Equal(t, "25G / 100G (25%)", formatDiskUsage(25<<30, 100<<30))
}

func TestBuildFooterHelpSegments(t *testing.T) {
	state := &statepkg.AppState{Clipboard: "/tmp/report.pdf"}
	got := buildFooterHelpSegments(state)
	assert.Contains(t, got, "?: help")
	require.NotEmpty(t, got)
	assert.Equal(t, "clipboard: report.pdf", got[len(got)-1])

	state.SearchActive = true
	assert.Equal(t,
		[]string{"type: search", "↵: keep results", "Esc: clear", "↑↓: select"},
		buildFooterHelpSegments(state))
}

func TestTypeCacheDetectsOncePerEntry(t *testing.T) {
	calls := 0
	cache := typeCache{detect: func(string) string {
		calls++
		return "text/plain"
	}}
	entry := &statepkg.FileEntry{Path: "/x.txt", Modified: time.Unix(100, 0)}

	for i := 0; i < 3; i++ {
		assert.Equal(t, "text/plain", cache.lookup(entry))
	}
	assert.Equal(t, 1, calls)

	entry.Modified = time.Unix(200, 0)
	cache.lookup(entry)
	assert.Equal(t, 2, calls, "modified entry is detected again")
}
