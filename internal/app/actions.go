package app

import (
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

var writeClipboard = clipboard.WriteAll

// handleYank puts the path under the cursor, or the current directory when
// the view is empty, on the OS clipboard. The engine clipboard used by
// copy and paste is left alone.
func (app *Application) handleYank() bool {
	target := app.state.CurrentPath
	if entry := app.state.CurrentEntry(); entry != nil {
		target = entry.Path
	}
	target = normalizeClipboardPath(target, runtime.GOOS)

	if err := writeClipboard(target); err != nil {
		app.log.Warn("clipboard write failed", zap.String("path", target), zap.Error(err))
		app.state.LastError = err
		app.state.StatusMessage = "clipboard unavailable"
		return true
	}
	app.state.LastError = nil
	app.state.StatusMessage = ""
	app.state.LastYankTime = time.Now()
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}
