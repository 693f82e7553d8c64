// Package logger builds the zap logger nimbus writes to its log file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log levels accepted by New.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Logger wraps zap's SugaredLogger together with the file it writes to.
type Logger struct {
	*zap.SugaredLogger
	file *os.File
	path string
}

// defaultZapLevel is used when the level string is not recognised.
const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// New opens (creating if needed) the log file at path and returns a logger
// writing console-encoded lines to it. The terminal belongs to the TUI, so
// nothing is written to stdout or stderr.
func New(path, level string) (*Logger, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	core := newFileCore(zapcore.Lock(file), toZapLevel(level))
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
		file:          file,
		path:          path,
	}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// newFileCore builds a console-encoded core. Fields are tab separated:
// time, level, message, then structured context.
func newFileCore(ws zapcore.WriteSyncer, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
}

// Path returns the file the logger writes to, or "" for Nop loggers.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = l.Sync()
	return l.file.Close()
}
