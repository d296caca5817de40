package main

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/nieomylnieja/dtsdoc/internal/config"
)

// newLogger builds the CLI logger. Verbose always wins over the configured level.
func newLogger(w io.Writer, level string, format config.LogFormat, verbose bool) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	}))
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
