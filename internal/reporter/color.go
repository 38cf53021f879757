package reporter

import (
	"io"
	"os"
)

// ANSI escape codes for text output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// paint returns the escape code when color is enabled, otherwise nothing.
func paint(enabled bool, code string) string {
	if enabled {
		return code
	}
	return ""
}

// isTTY returns true if the writer is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
