//go:build windows

package fs

import "golang.org/x/sys/windows"

// DiskUsage reports used and total bytes of the volume holding path.
// Any failure yields (0, 0).
func DiskUsage(path string) (used, total uint64) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}

	var freeToCaller, totalBytes, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(ptr, &freeToCaller, &totalBytes, &totalFree); err != nil {
		return 0, 0
	}
	if freeToCaller > totalBytes {
		return 0, totalBytes
	}
	return totalBytes - freeToCaller, totalBytes
}
