// Package logging builds the structured loggers used across the binaries.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a timestamped logger writing to w at the named level
// ("debug", "info", "warn", "error", "fatal"). Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "invaders",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel + 1})
}
