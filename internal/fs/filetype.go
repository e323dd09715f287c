package fs

import (
	"os"

	"github.com/gabriel-vasile/mimetype"
)

const directoryType = "inode/directory"

// DetectType sniffs the MIME type of path. Directories report
// "inode/directory"; special files and read failures report "".
func DetectType(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		return directoryType
	}
	if !info.Mode().IsRegular() {
		return ""
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return mt.String()
}
