// Package logging builds the zerolog loggers the mlcds commands run with.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a logger writing to out. format can be "text" (human-friendly
// console) or "json" (structured); component tags every line with the command
// or subsystem emitting it, so serve and score output stay distinguishable in
// aggregated logs.
func New(out io.Writer, format, component string) zerolog.Logger {
	if format == "text" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).With().Timestamp().Str("component", component).Logger()
}

// Setup builds the process logger on stderr.
func Setup(format, component string) zerolog.Logger {
	return New(os.Stderr, format, component)
}
