//go:build windows

package app

// Windows has no job control; suspend does nothing.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
