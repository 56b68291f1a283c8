// Package logging configures the process-wide zerolog logger used at the
// adapter and cmd boundary. Core detector packages never import this —
// they are pure functions of their inputs, per the pipeline's no-I/O
// invariant on the hot path.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a human-readable console logger when pretty is true (for
// interactive CLI use), or a plain JSON logger otherwise (for the feed
// server, where output may be captured by a process supervisor).
func New(pretty bool, level zerolog.Level) zerolog.Logger {
	var w io.Writer = os.Stderr
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
