// Package logger builds the zerolog logger shared by the CLI and the page
// wiring.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a logger for the named site deployment. Pretty selects a
// console writer for local development; otherwise output is JSON. Unknown
// level strings fall back to info.
func New(site, level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var output io.Writer = os.Stdout
	if pretty {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Str("site", site).
		Logger()
}
