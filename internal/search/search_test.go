package search

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	fsutil "github.com/kk-code-lab/rfm/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func names(entries []fsutil.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	sort.Strings(out)
	return out
}

func TestSearchIgnoresCase(t *testing.T) {
	root := makeTree(t, map[string]string{
		"foo.rs":  "fn main() {}",
		"BAR.RS":  "",
		"baz.txt": "",
	})
	s := NewSearcher()

	upper := s.Search(root, "RS", time.Now(), Snapshot{})
	assert.Equal(t, []string{"BAR.RS", "foo.rs"}, names(upper.Results))

	lower := s.Walk(root, "rs")
	assert.Equal(t, []string{"BAR.RS", "foo.rs"}, names(lower))
}

func TestSearchMatchesNamesAtAnyDepth(t *testing.T) {
	root := makeTree(t, map[string]string{
		"top_report.md":             "a",
		"a/b/c/deep_report.md":      "bb",
		"reports/index.html":        "ccc",
		"unrelated/nothing_here.md": "",
	})

	results := NewSearcher().Walk(root, "report")
	assert.Equal(t, []string{"deep_report.md", "reports", "top_report.md"}, names(results))

	for _, e := range results {
		assert.True(t, filepath.IsAbs(e.Path), "path %s should be absolute", e.Path)
		if e.Name == "reports" {
			assert.True(t, e.IsDir)
			assert.Equal(t, int64(3), e.Size, "directory results are sized recursively")
		}
		if e.Name == "deep_report.md" {
			assert.Equal(t, filepath.Join(root, "a", "b", "c", "deep_report.md"), e.Path)
			assert.Equal(t, int64(2), e.Size)
		}
	}
}

func TestSearchMatchesNameNotPath(t *testing.T) {
	root := makeTree(t, map[string]string{
		"rsdir/inner.txt": "",
	})

	results := NewSearcher().Walk(root, "rs")
	assert.Equal(t, []string{"rsdir"}, names(results))
}

func TestSearchExcludesRoot(t *testing.T) {
	root := makeTree(t, map[string]string{"child.txt": ""})
	named := filepath.Join(root, "needle")
	require.NoError(t, os.Mkdir(named, 0o755))

	results := NewSearcher().Walk(named, "needle")
	assert.Empty(t, results)
}

func TestSearchDebounce(t *testing.T) {
	root := makeTree(t, map[string]string{
		"alpha.txt": "",
		"beta.txt":  "",
	})
	s := NewSearcher()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := s.Search(root, "alpha", start, Snapshot{})
	require.Equal(t, []string{"alpha.txt"}, names(first.Results))
	require.Equal(t, start, first.LastRun)

	second := s.Search(root, "beta", start.Add(150*time.Millisecond), first)
	assert.Equal(t, first.Results, second.Results, "inside the window results must not change")
	assert.Equal(t, first.LastRun, second.LastRun)

	third := s.Search(root, "beta", start.Add(DefaultInterval), second)
	assert.Equal(t, []string{"beta.txt"}, names(third.Results))
	assert.Equal(t, start.Add(DefaultInterval), third.LastRun)
}

func TestSearchCustomInterval(t *testing.T) {
	s := &Searcher{Interval: time.Second}
	now := time.Now()
	assert.False(t, s.Due(now, now.Add(-999*time.Millisecond)))
	assert.True(t, s.Due(now, now.Add(-time.Second)))
}

func TestSearchExcludePatterns(t *testing.T) {
	root := makeTree(t, map[string]string{
		"src/main.go":            "",
		"node_modules/x/main.go": "",
		".git/main.go":           "",
	})
	s := &Searcher{Exclude: []string{"node_modules", ".*"}}

	results := s.Walk(root, "main")
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(root, "src", "main.go"), results[0].Path)
}

func TestMatchFoldsUnicode(t *testing.T) {
	assert.True(t, Match("äpfel.txt", "ÄPFEL"))
	assert.True(t, Match("Report.PDF", "rt.p"))
	assert.False(t, Match("notes.txt", "md"))
}
