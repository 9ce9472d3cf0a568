// Package logging provides the diagnostic sink the core writes to. It is a
// thin wrapper over log/slog, lazily initialized the first time it is used,
// mirroring the teacher repo's logging package but scaled down to what a
// single-threaded, in-memory engine needs: no file rotation, no structured
// request context, just a default logger callers can swap out.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	logger  *slog.Logger
	setOnce sync.Once
)

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// SetDefault installs l as the package-wide logger. Tests use this to
// redirect diagnostics into a buffer they can assert against.
func SetDefault(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Get returns the current logger, initializing it to a stderr text handler
// on first use.
func Get() *slog.Logger {
	setOnce.Do(func() {
		mu.Lock()
		if logger == nil {
			logger = defaultLogger()
		}
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }
