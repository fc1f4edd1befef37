//go:build windows

package app

import "os/exec"

// platformOpen launches path through the shell so shortcuts and executables
// both work. The empty argument is start's window title.
func platformOpen(path string) error {
	return exec.Command("cmd", "/c", "start", "", path).Start()
}
