// Package log provides structured logging for gaitkit.
// It wraps zap with a process-wide logger that the systems and commands share.
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

// Init builds the global logger with the given level.
// Valid levels: "debug", "info", "warn", "error". GAITKIT_ENV=production
// switches to the JSON encoder.
func Init(level string) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	if os.Getenv("GAITKIT_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	Set(l)
}

// Set replaces the global logger. Tests use it with zaptest loggers.
func Set(l *zap.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// L returns the global logger instance, building an info logger on first use.
func L() *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		Init("info")
		return L()
	}
	return l
}

// Named returns a child logger for a subsystem.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

// Info logs at info level.
func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

// Error logs at error level.
func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

// Sync flushes buffered entries. Commands call it before exiting.
func Sync() {
	_ = L().Sync()
}
