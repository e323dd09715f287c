//go:build windows

package fs

import "golang.org/x/sys/windows"

// IsHidden checks the hidden attribute, falling back to the dot-file rule
// when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	target := fullPath
	if target == "" {
		target = name
	}
	dotted := name != "" && name[0] == '.'
	if target == "" {
		return dotted
	}

	ptr, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return dotted
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return dotted
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
