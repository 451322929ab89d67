package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupGlobal configures the process-wide zerolog logger. JSON output is meant
// for servers behind a log collector; otherwise a console writer is used.
func SetupGlobal(debug bool, json bool) {
	SetupWriter(os.Stderr, debug, json)
}

func SetupWriter(w io.Writer, debug bool, json bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	out := w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
