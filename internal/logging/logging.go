// Package logging builds the slog logger used by the command, backed by a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn" or "error") in the given format ("text", "json" or "logfmt").
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter log.Formatter
	switch format {
	case "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:     lvl,
		Formatter: formatter,
	})
	return slog.New(handler), nil
}
