//go:build darwin

package app

import "os/exec"

// platformOpen launches the bundle or file at path using the macOS 'open'
// command.
func platformOpen(path string) error {
	return exec.Command("open", path).Start()
}
