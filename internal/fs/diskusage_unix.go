//go:build linux || darwin || freebsd || dragonfly

package fs

import "golang.org/x/sys/unix"

// DiskUsage reports used and total bytes of the volume holding path.
// Any failure yields (0, 0).
func DiskUsage(path string) (used, total uint64) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0
	}

	bsize := uint64(st.Bsize)
	total = uint64(st.Blocks) * bsize
	available := uint64(st.Bavail) * bsize
	if available > total {
		return 0, total
	}
	return total - available, total
}
