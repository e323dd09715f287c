package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

var commandBuilder = exec.Command

// platformLauncher starts the OS file opener and a terminal emulator without
// waiting for either to exit.
type platformLauncher struct {
	goos     string
	terminal []string
	log      *zap.Logger
}

func newPlatformLauncher(terminal string, log *zap.Logger) *platformLauncher {
	if log == nil {
		log = zap.NewNop()
	}
	return &platformLauncher{
		goos:     runtime.GOOS,
		terminal: parseCommand(terminal),
		log:      log,
	}
}

func (l *platformLauncher) Open(path string) error {
	return l.start(openCommand(l.goos, path))
}

func (l *platformLauncher) OpenTerminal(dir string) error {
	return l.start(terminalCommand(l.goos, l.terminal, dir))
}

func (l *platformLauncher) start(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command available")
	}
	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			l.log.Debug("launched command exited", zap.Strings("args", args), zap.Error(err))
		}
	}()
	return nil
}

func openCommand(goos, path string) []string {
	switch strings.ToLower(goos) {
	case "windows":
		return []string{"cmd", "/C", "start", "", path}
	case "darwin":
		return []string{"open", path}
	default:
		return []string{"xdg-open", path}
	}
}

// terminalCommand builds the command opening a terminal in dir. A configured
// terminal wins on every platform; the directory is appended as its last
// argument unless one of the arguments contains {dir}.
func terminalCommand(goos string, configured []string, dir string) []string {
	if len(configured) > 0 {
		args := make([]string, 0, len(configured)+1)
		substituted := false
		for _, arg := range configured {
			if strings.Contains(arg, "{dir}") {
				arg = strings.ReplaceAll(arg, "{dir}", dir)
				substituted = true
			}
			args = append(args, arg)
		}
		if !substituted {
			args = append(args, dir)
		}
		return args
	}

	switch strings.ToLower(goos) {
	case "windows":
		return []string{"cmd", "/C", "start", "cmd.exe", "/K", "cd", "/d", dir}
	case "darwin":
		return []string{"open", "-a", "Terminal", dir}
	default:
		return []string{"x-terminal-emulator", "--working-directory", dir}
	}
}

// parseCommand splits a shell-like command line, honouring single and
// double quotes.
func parseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}

	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}
