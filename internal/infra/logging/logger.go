// Package logging adapts zap to the domain.Logger port.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mkondo/taskping/internal/domain"
)

// Ensure Logger implements domain.Logger.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps zap with the task-scoped logging interface used by the
// engine. Task ID 0 means a global (non task-specific) entry.
type Logger struct {
	zl *zap.Logger
}

// New builds a production zap logger at the given level and registers it
// as the zap global so infra packages can log through zap.L(). When
// logPath is non-empty, entries additionally go to that file.
func New(level, logPath string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
			return nil, err
		}
		cfg.OutputPaths = append(cfg.OutputPaths, logPath)
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(zl)
	return &Logger{zl: zl}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

// ParseLevel parses a log level string into a zap level.
func ParseLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) fields(taskID int, category string) []zap.Field {
	if taskID > 0 {
		return []zap.Field{zap.String("category", category), zap.Int("task", taskID)}
	}
	return []zap.Field{zap.String("category", category)}
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int, category, msg string) {
	l.zl.Debug(msg, l.fields(taskID, category)...)
}

// Info logs an info message.
func (l *Logger) Info(taskID int, category, msg string) {
	l.zl.Info(msg, l.fields(taskID, category)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int, category, msg string) {
	l.zl.Warn(msg, l.fields(taskID, category)...)
}

// Error logs an error message.
func (l *Logger) Error(taskID int, category, msg string) {
	l.zl.Error(msg, l.fields(taskID, category)...)
}
