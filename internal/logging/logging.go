// Package logging configures the go-logging backend used by all packages.
// Diagnostics always go to stderr so the UCI reply stream on stdout stays
// clean protocol text.
package logging

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:-8s} %{module:-8s} %{message}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
}

// GetLog returns the logger for a module.
func GetLog(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// SetLevel sets the global log level from a string ("debug", "info",
// "warning", "error", "critical"). Unknown names fall back to info.
func SetLevel(level string) {
	l, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		l = logging.INFO
	}
	logging.SetLevel(l, "")
}
