//go:build linux

package app

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// platformOpen launches the application at path. Desktop entries go through
// gtk-launch, which honours Exec= and Terminal=; anything else, or a system
// without gtk-launch, is handed to xdg-open.
func platformOpen(path string) error {
	name, args := launchCommand(path, exec.LookPath)
	return exec.Command(name, args...).Start()
}

// launchCommand picks the launcher for path. lookPath is exec.LookPath
// outside tests.
func launchCommand(path string, lookPath func(string) (string, error)) (string, []string) {
	if strings.HasSuffix(path, ".desktop") {
		if _, err := lookPath("gtk-launch"); err == nil {
			return "gtk-launch", []string{filepath.Base(path)}
		}
		if _, err := lookPath("gio"); err == nil {
			return "gio", []string{"launch", path}
		}
	}
	return "xdg-open", []string{path}
}
