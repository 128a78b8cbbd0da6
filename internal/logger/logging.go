// Package logger builds charmbracelet loggers preconfigured for SpellServe.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a prefixed logger on stderr following the global log
// level. Stdout stays free for msgpack traffic and batch reports.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a prefixed logger on stderr with explicit settings.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
