package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger creates the run's slog.Logger backed by a charmbracelet/log
// handler writing status lines to w. Unknown levels fall back to info.
func newLogger(levelStr string, w io.Writer) *slog.Logger {
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		level = log.InfoLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return slog.New(handler)
}
