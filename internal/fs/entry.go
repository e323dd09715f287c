package fs

import (
	"os"
	"time"
)

// Entry represents a single file or directory on disk.
//
// For directories Size is the recursive sum of the regular files below it,
// for everything else it is the length reported by the OS.
type Entry struct {
	Name      string
	Path      string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Path, e.Name)
}

// SkipFunc receives entries a walk could not read. Walks never abort on such
// entries; they report them here and carry on.
type SkipFunc func(path string, err error)

func (fn SkipFunc) report(path string, err error) {
	if fn != nil {
		fn(path, err)
	}
}

func modTimeOrNow(info os.FileInfo) time.Time {
	if info == nil {
		return time.Now()
	}
	if t := info.ModTime(); !t.IsZero() {
		return t
	}
	return time.Now()
}
