package output

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the diagnostic logger used by the resolver and writer.
// Only warnings are shown unless verbose is set.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !IsTTY(w),
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
