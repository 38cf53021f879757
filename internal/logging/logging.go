package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init installs the default slog logger for the process. Verbose mode logs
// at Debug; otherwise only warnings and errors surface so converted SQL on
// stdout stays clean. A nil output means os.Stderr.
func Init(verbose bool, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
