package render

import (
	"fmt"
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/rfm/internal/fs"
	statepkg "github.com/kk-code-lab/rfm/internal/state"
)

const modifiedLayout = "2006-01-02 15:04"

var sizeUnits = []string{"K", "M", "G", "T", "P", "E"}

// formatSize renders a byte count the way ls -h does: 512B, 1.5K, 20M.
func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	value := float64(n)
	unit := -1
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	if value >= 10 {
		return fmt.Sprintf("%.0f%s", value, sizeUnits[unit])
	}
	return trimTrailingZero(fmt.Sprintf("%.1f", value)) + sizeUnits[unit]
}

func formatDiskUsage(used, total uint64) string {
	if total == 0 {
		return ""
	}
	percent := float64(used) / float64(total) * 100
	return fmt.Sprintf("%s / %s (%.0f%%)", formatSize(int64(used)), formatSize(int64(total)), percent)
}

func formatModified(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(modifiedLayout)
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000.0)) + "M"
	case n >= 1_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000.0)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

func formatSearchStatus(state *statepkg.AppState) string {
	count := len(state.SearchResults)
	noun := "matches"
	if count == 1 {
		noun = "match"
	}
	parts := []string{formatCompactNumber(count) + " " + noun}
	if state.SearchPending() {
		parts = append(parts, "searching…")
	}
	return strings.Join(parts, " · ")
}

// entryDetails is the right-hand side of the status line: type, size and
// modification time of the entry under the cursor.
func (r *Renderer) entryDetails(entry *statepkg.FileEntry) string {
	if entry == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if kind := r.types.lookup(entry); kind != "" {
		parts = append(parts, kind)
	}
	parts = append(parts, formatSize(entry.Size))
	if modified := formatModified(entry.Modified); modified != "" {
		parts = append(parts, modified)
	}
	return strings.Join(parts, " · ")
}

// typeCache remembers the MIME type of the last entry asked for, so that
// redraws do not re-read the file.
type typeCache struct {
	path     string
	modified time.Time
	value    string
	detect   func(string) string
}

func (c *typeCache) lookup(entry *statepkg.FileEntry) string {
	if entry.Path == c.path && entry.Modified.Equal(c.modified) {
		return c.value
	}
	detect := c.detect
	if detect == nil {
		detect = fsutil.DetectType
	}
	c.path = entry.Path
	c.modified = entry.Modified
	c.value = detect(entry.Path)
	return c.value
}
