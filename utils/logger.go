package utils

import (
	"io"

	"github.com/pterm/pterm"
)

// NewLogger returns the diagnostic logger. Diagnostics go to w so that they never
// mix with the per-file report.
func NewLogger(w io.Writer, verbose bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	return pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(level).
		WithTime(false)
}
