//go:build !debug

package debug

// Enabled reports whether this is a debug build.
const Enabled = false

func Log(cat Category, format string, args ...any) {}

func Enable(cats ...Category) {}
