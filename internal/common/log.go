package common

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// LoggingEnabled controls whether Logf produces output.
var LoggingEnabled = true

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the process-wide logger. Library code gets a no-op logger
// until a binary installs one with SetLogger.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the process-wide logger. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// NewConsoleLogger builds the human-readable logger used by the binaries.
func NewConsoleLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// Logf logs a formatted message at info level if logging is enabled.
func Logf(format string, args ...interface{}) {
	if LoggingEnabled {
		Logger().Sugar().Infof(format, args...)
	}
}

// Debugf logs a formatted message at debug level if logging is enabled.
func Debugf(format string, args ...interface{}) {
	if LoggingEnabled {
		Logger().Sugar().Debugf(format, args...)
	}
}

// formatDuration formats a duration with 2 decimal places.
// Returns a string like "1.23 ms" (no padding).
func formatDuration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)

	// Handle durations >= 1 second
	if ms >= 1000 {
		sec := ms / 1000
		return fmt.Sprintf("%.2f s", sec)
	} else if ms < 0.01 {
		// Sub-0.01 ms: show in microseconds
		us := ms * 1000
		return fmt.Sprintf("%.2f us", us)
	}
	return fmt.Sprintf("%.2f ms", ms)
}

// LogDuration logs a message with the elapsed time since start.
func LogDuration(start time.Time, format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	msg := fmt.Sprintf(format, args...)
	Logger().Info(msg, zap.String("elapsed", formatDuration(time.Since(start))))
}
