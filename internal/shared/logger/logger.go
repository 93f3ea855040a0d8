package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New initializes the root zerolog.Logger every component derives
// from. 'devMode' enables human-readable console output and the
// debug level; production gets JSON at info.
func New(devMode bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	level := zerolog.InfoLevel

	if devMode {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
