package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// List returns the immediate children of dir.
//
// It fails only when dir is missing or is not a directory. Children whose
// metadata cannot be read are left out and reported to onSkip, so a partial
// listing is a normal result. Order is whatever the OS enumeration yields.
func List(dir string, onSkip SkipFunc) ([]Entry, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve directory %s: %w", dir, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		// ReadDir hands back whatever it enumerated before failing.
		onSkip.report(dir, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		fullPath := filepath.Join(dir, d.Name())
		info, err := d.Info()
		if err != nil {
			onSkip.report(fullPath, err)
			continue
		}
		entries = append(entries, buildEntry(fullPath, d.Name(), info, onSkip))
	}

	return entries, nil
}

// Stat builds the Entry for a single path the same way List does for each
// child.
func Stat(path string, onSkip SkipFunc) (Entry, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, err
	}
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	return buildEntry(path, filepath.Base(path), info, onSkip), nil
}

// buildEntry classifies through symlinks: a link to a directory is listed as
// a directory. A dangling link keeps its own lstat metadata.
func buildEntry(fullPath, name string, info os.FileInfo, onSkip SkipFunc) Entry {
	isSymlink := info.Mode()&os.ModeSymlink != 0
	if isSymlink {
		if target, err := os.Stat(fullPath); err == nil {
			info = target
		}
	}

	entry := Entry{
		Name:      norm.NFC.String(name),
		Path:      fullPath,
		IsDir:     info.IsDir(),
		IsSymlink: isSymlink,
		Size:      info.Size(),
		Modified:  modTimeOrNow(info),
		Mode:      info.Mode(),
	}
	if entry.IsDir {
		entry.Size = SizeOf(fullPath, onSkip)
	}
	return entry
}
