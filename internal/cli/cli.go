// Package cli implements the symred command-line interface.
//
// The CLI exposes three commands: autom derives and prints the
// automorphism group of an architecture description, repr canonicalizes
// task allocations into orbit representatives, and profile measures
// repeated canonicalization runs. All commands support --verbose (-v) for
// debug-level logging and --config for a TOML settings file.
//
// Loggers are passed through context.Context so subcommands and the
// observability bridge share one configured logger.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// newLogger creates a logger with timestamp formatting writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// withLogger attaches a logger to the context.
func withLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFromContext returns the attached logger, or the package default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}
