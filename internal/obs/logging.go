// Package obs holds observability utilities for the cartctl binary. The cart
// core itself stays silent; logging happens at the tool boundary.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the shared structured logger.
var Logger *slog.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// Init replaces the logger with one at the requested verbosity. Verbose mode
// logs storage and reconciliation events at debug level.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
