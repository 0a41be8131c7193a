package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/theogravity/config-ready/internal/config"
)

// initLogger installs the process-wide slog default logger per the
// --log-level and --log-format flags. Logs go to stderr so stdout stays
// clean for answer output.
func initLogger(level, format string) error {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case config.LogFormatText:
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
