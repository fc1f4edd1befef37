package app

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/launchgrid/internal/debug"
)

// setupLogging routes the global logger to stderr. Info and above by
// default; -debug or a debug build lowers the level, and -debug in a debug
// build also enables every trace category.
func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose || debug.Enabled {
		level = zerolog.DebugLevel
	}
	if verbose {
		debug.Enable(debug.Categories...)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().
		Timestamp().
		Logger()
}
