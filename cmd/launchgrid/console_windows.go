//go:build windows

package main

import "syscall"

// manageConsole detaches from the console unless logs were asked for, so a
// launcher started from Explorer does not leave a terminal window behind.
func manageConsole(verbose bool) {
	if verbose {
		return
	}
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	kernel32.NewProc("FreeConsole").Call()
}
