// Package logging configures the process-wide zerolog logger. A TUI owns
// stdout and stderr, so logs go to a file under the XDG state directory and
// logging is disabled entirely when that file cannot be opened.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at $XDG_STATE_HOME/mpdart/log with the
// given level ("debug", "info", "warn", "error", ...). It returns the log
// file path, empty when logging is disabled.
func Setup(level string) (string, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return "", err
	}

	path, err := xdg.StateFile("mpdart/log")
	if err != nil {
		log.Logger = zerolog.Nop()
		return "", nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return "", nil
	}

	log.Logger = zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Info().Str("level", lvl.String()).Msg("starting logging")
	return path, nil
}
