// Package search walks a directory tree for entries whose names contain a
// query, gated by a debounce interval so interactive typing does not start a
// full walk per keystroke.
package search

import (
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	fsutil "github.com/kk-code-lab/rfm/internal/fs"
)

// DefaultInterval is the minimum spacing between two walks.
const DefaultInterval = 400 * time.Millisecond

// Snapshot is the outcome of the most recent walk.
type Snapshot struct {
	Results []fsutil.Entry
	LastRun time.Time
}

// Searcher finds entries by name anywhere below a root directory.
type Searcher struct {
	// Interval is the debounce window. Zero means DefaultInterval.
	Interval time.Duration
	// Exclude holds doublestar patterns; directories whose name matches one
	// are not descended into.
	Exclude []string
	// Workers bounds the walk's parallelism. Zero lets fastwalk decide.
	Workers int
	// OnSkip receives unreadable paths. It may be called concurrently.
	OnSkip fsutil.SkipFunc
}

// NewSearcher returns a Searcher with the default interval.
func NewSearcher() *Searcher {
	return &Searcher{Interval: DefaultInterval}
}

func (s *Searcher) interval() time.Duration {
	if s.Interval <= 0 {
		return DefaultInterval
	}
	return s.Interval
}

// Delay is the effective debounce interval.
func (s *Searcher) Delay() time.Duration {
	return s.interval()
}

// Due reports whether a walk may start at now given the previous run.
func (s *Searcher) Due(now, lastRun time.Time) bool {
	return now.Sub(lastRun) >= s.interval()
}

// Search returns prev untouched while inside the debounce window. Otherwise
// it walks root for query and stamps the new snapshot with now.
//
// An empty query matches every name; callers that treat an empty query as
// "no search" must not call Search with one.
func (s *Searcher) Search(root, query string, now time.Time, prev Snapshot) Snapshot {
	if !s.Due(now, prev.LastRun) {
		return prev
	}
	return Snapshot{
		Results: s.Walk(root, query),
		LastRun: now,
	}
}

// Walk runs the recursive walk without any debounce gate. Results are
// ordered by path.
func (s *Searcher) Walk(root, query string) []fsutil.Entry {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		s.skip(root, err)
		return nil
	}
	absRoot = filepath.Clean(absRoot)
	folded := fold(query)

	var mu sync.Mutex
	var matches []string

	conf := fastwalk.Config{Follow: false, NumWorkers: s.Workers}
	err = fastwalk.Walk(&conf, absRoot, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			s.skip(path, err)
			return nil
		}
		if filepath.Clean(path) == absRoot {
			return nil
		}

		name := d.Name()
		if d.IsDir() && s.excluded(name) {
			return filepath.SkipDir
		}
		if strings.Contains(fold(name), folded) {
			mu.Lock()
			matches = append(matches, path)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		s.skip(absRoot, err)
	}

	sort.Strings(matches)
	results := make([]fsutil.Entry, 0, len(matches))
	for _, path := range matches {
		entry, err := fsutil.Stat(path, s.OnSkip)
		if err != nil {
			s.skip(path, err)
			continue
		}
		results = append(results, entry)
	}
	return results
}

func (s *Searcher) excluded(name string) bool {
	for _, pattern := range s.Exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func (s *Searcher) skip(path string, err error) {
	if s.OnSkip != nil {
		s.OnSkip(path, err)
	}
}
