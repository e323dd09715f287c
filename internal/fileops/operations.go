// Package fileops implements the mutating filesystem actions of the file
// manager: delete, copy, paste, rename and directory creation.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Operations performs filesystem mutations. Per-child copy failures are
// logged as they happen; every method also returns its failure.
type Operations struct {
	log *zap.Logger
}

// New creates Operations logging to log. A nil logger discards output.
func New(log *zap.Logger) *Operations {
	if log == nil {
		log = zap.NewNop()
	}
	return &Operations{log: log}
}

// Delete removes path. Directories are removed with all their contents; a
// symlink is removed without touching its target.
func (o *Operations) Delete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return newPathError(codeDelete, path, err)
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return newPathError(codeDelete, path, err)
	}
	return nil
}

// Copy copies src to dst. Directories are copied recursively, creating dst
// and any missing parents; an existing file at the destination is
// overwritten. A child that fails is logged and skipped while its siblings
// are still copied; all such failures are returned together.
func (o *Operations) Copy(src, dst string) error {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return newMoveError(codeCopy, src, dst, err)
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return newMoveError(codeCopy, src, dst, err)
	}

	// The source root is followed; links further down are recreated as links.
	if resolved, err := filepath.EvalSymlinks(srcAbs); err == nil {
		srcAbs = resolved
	}
	info, err := os.Stat(srcAbs)
	if err != nil {
		return newMoveError(codeCopy, src, dst, err)
	}

	if dstInfo, err := os.Stat(dstAbs); err == nil && os.SameFile(info, dstInfo) {
		return newMoveError(codeCopySameFile, src, dst, nil)
	}
	if info.IsDir() && isWithin(dstAbs, srcAbs) {
		return newMoveError(codeCopyIntoSelf, src, dst, nil)
	}

	var failures error
	opts := copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		OnError: func(s, d string, err error) error {
			if err == nil {
				return nil
			}
			o.log.Warn("copy entry failed",
				zap.String("source", s),
				zap.String("destination", d),
				zap.Error(err),
			)
			failures = multierr.Append(failures, newMoveError(codeCopy, s, d, err))
			return nil
		},
	}

	if err := copy.Copy(srcAbs, dstAbs, opts); err != nil {
		failures = multierr.Append(failures, newMoveError(codeCopy, src, dst, err))
	}
	return failures
}

// Paste copies source into dir under its own name and returns the
// destination. An empty source is a no-op. Pasting into the directory that
// already holds source picks a free "name copy" variant rather than copying
// a file onto itself.
func (o *Operations) Paste(source, dir string) (string, error) {
	if source == "" {
		return "", nil
	}

	dst := filepath.Join(dir, filepath.Base(source))
	if samePath(source, dst) {
		dst = freeCopyName(dst)
	}
	return dst, o.Copy(source, dst)
}

// Rename gives oldPath the name newName inside the same parent directory and
// returns the new path. An existing entry at the new path is never
// overwritten: the rename fails and nothing changes. Changing only the case
// of a name is allowed on case-insensitive volumes.
func (o *Operations) Rename(oldPath, newName string) (string, error) {
	if err := validateName(newName); err != nil {
		return "", err
	}

	oldPath = filepath.Clean(oldPath)
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if newPath == oldPath {
		return newPath, nil
	}

	oldInfo, err := os.Lstat(oldPath)
	if err != nil {
		return "", newMoveError(codeRename, oldPath, newPath, err)
	}
	if existing, err := os.Lstat(newPath); err == nil && !os.SameFile(existing, oldInfo) {
		return "", newMoveError(codeRenameTargetExists, oldPath, newPath, nil)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return "", newMoveError(codeRename, oldPath, newPath, err)
	}
	return newPath, nil
}

// CreateDirectory creates parent/name. It fails when anything with that name
// already exists.
func (o *Operations) CreateDirectory(parent, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(parent, name)
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", newPathError(codeCreateDirectory, path, err)
	}
	return path, nil
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return newPathError(codeInvalidName, name, fmt.Errorf("name is empty"))
	case name == "." || name == "..":
		return newPathError(codeInvalidName, name, fmt.Errorf("name %q is reserved", name))
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return newPathError(codeInvalidName, name, fmt.Errorf("name contains a path separator"))
	case strings.ContainsRune(name, 0):
		return newPathError(codeInvalidName, name, fmt.Errorf("name contains a NUL byte"))
	}
	return nil
}

// isWithin reports whether path is root or lies below it.
func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// freeCopyName returns "base copy.ext", then "base copy 2.ext" and so on,
// whichever is free first.
func freeCopyName(path string) string {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	ext := ""
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		ext = filepath.Ext(name)
	}
	stem := strings.TrimSuffix(name, ext)

	for i := 1; ; i++ {
		suffix := " copy"
		if i > 1 {
			suffix = fmt.Sprintf(" copy %d", i)
		}
		candidate := filepath.Join(dir, stem+suffix+ext)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
