// Package logging provides zerolog-based structured logging helpers.
//
// Library code obtains its logger from the context via FromContext; when no
// logger has been attached the returned logger is disabled, so the library is
// silent by default. The CLI attaches a configured logger with WithContext.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how a logger is constructed.
type Config struct {
	// Level is the minimum level to emit ("debug", "info", "warn", "error").
	// Unparseable values fall back to "info".
	Level string

	// Format selects "console" (human-readable, the default) or "json".
	Format string

	// Output selects the destination: "stderr" (default), "stdout", or "file".
	Output string

	// File is the log file path, used when Output is "file".
	File string
}

// New builds a zerolog.Logger from cfg.
func New(cfg Config) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			return zerolog.Nop(), fmt.Errorf("opening log file: %w", openErr)
		}
		out = f
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log output %q", cfg.Output)
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none has been attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}
