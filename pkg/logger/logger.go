package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Leveled logger shared by the API process.
// Init(level) picks the threshold, SetOutput picks the sink and format
// (text or json). Call sites use the printf-style helpers.

// LevelFatal sits above slog.LevelError and is always emitted.
const LevelFatal = slog.Level(12)

var (
	mu     sync.RWMutex
	level  = new(slog.LevelVar)
	logger = newLogger(os.Stdout, "text")
)

func newLogger(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l >= LevelFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values select info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	case "fatal":
		level.Set(LevelFatal)
	default:
		level.Set(slog.LevelInfo)
	}
}

// SetOutput redirects log output. format is "text" or "json".
func SetOutput(w io.Writer, format string) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, format)
}

// Logger returns the underlying structured logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a structured logger carrying the given attributes.
func With(args ...any) *slog.Logger { return Logger().With(args...) }

func logf(l slog.Level, format string, v ...interface{}) {
	lg := Logger()
	ctx := context.Background()
	if !lg.Enabled(ctx, l) {
		return
	}
	lg.Log(ctx, l, fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...interface{}) { logf(slog.LevelDebug, format, v...) }
func Infof(format string, v ...interface{})  { logf(slog.LevelInfo, format, v...) }
func Warnf(format string, v ...interface{})  { logf(slog.LevelWarn, format, v...) }
func Errorf(format string, v ...interface{}) { logf(slog.LevelError, format, v...) }

func Fatalf(format string, v ...interface{}) {
	Logger().Log(context.Background(), LevelFatal, fmt.Sprintf(format, v...))
	os.Exit(1)
}

func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	switch l := level.Level(); {
	case l >= LevelFatal:
		return "fatal"
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	case l >= slog.LevelInfo:
		return "info"
	}
	return "debug"
}
