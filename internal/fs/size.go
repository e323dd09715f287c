package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// SizeOf returns the total length of every regular file under path.
//
// Symlinks are never traversed; a link counts only when it points at a
// regular file. Unreadable subtrees count as zero and are reported to
// onSkip, which may be called from several goroutines at once.
func SizeOf(path string, onSkip SkipFunc) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		onSkip.report(path, err)
		return 0
	}

	root := path
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err != nil {
			onSkip.report(path, err)
			return 0
		}
		info = target
		if info.IsDir() {
			if resolved, err := filepath.EvalSymlinks(path); err == nil {
				root = resolved
			}
		}
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return info.Size()
		}
		return 0
	}

	var total atomic.Int64
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			onSkip.report(p, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		total.Add(walkedFileSize(p, d, onSkip))
		return nil
	})
	if err != nil {
		onSkip.report(root, err)
	}

	return total.Load()
}

func walkedFileSize(path string, d iofs.DirEntry, onSkip SkipFunc) int64 {
	switch {
	case d.Type().IsRegular():
		info, err := d.Info()
		if err != nil {
			onSkip.report(path, err)
			return 0
		}
		return info.Size()
	case d.Type()&os.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil {
			return 0
		}
		if info.Mode().IsRegular() {
			return info.Size()
		}
	}
	return 0
}
