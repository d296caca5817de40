package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by all packages.
const (
	KeyStage      = "stage"
	KeySpecifier  = "specifier"
	KeySymbol     = "symbol"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyLocation   = "location"
	KeyError      = "error"
)

func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Specifier(s string) slog.Attr  { return slog.String(KeySpecifier, s) }
func Symbol(name string) slog.Attr  { return slog.String(KeySymbol, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Location(loc string) slog.Attr { return slog.String(KeyLocation, loc) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
