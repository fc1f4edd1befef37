//go:build debug

package debug

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Enabled reports whether this is a debug build.
const Enabled = true

var (
	enabled atomic.Pointer[map[Category]bool]

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMicro}).
		With().
		Timestamp().
		Logger()
)

func init() {
	on := ParseCategories(os.Getenv("LAUNCHGRID_DEBUG"))
	enabled.Store(&on)
}

// Log writes a trace line when cat is enabled.
func Log(cat Category, format string, args ...any) {
	if !(*enabled.Load())[cat] {
		return
	}
	logger.Debug().Str("cat", string(cat)).Msgf(format, args...)
}

// Enable turns on the named categories in addition to the current ones.
func Enable(cats ...Category) {
	next := make(map[Category]bool)
	for c, on := range *enabled.Load() {
		next[c] = on
	}
	for _, c := range cats {
		next[c] = true
	}
	enabled.Store(&next)
}
