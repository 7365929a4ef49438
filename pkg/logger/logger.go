// Package logger provides a simple logging interface backed by logrus
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger defines the logging interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents logging levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// logger implements the Logger interface on top of a logrus entry
type logger struct {
	*logrus.Logger
}

// New creates a new logger instance using LOG_LEVEL from the environment
func New() Logger {
	return NewWithLevel(os.Getenv("LOG_LEVEL"))
}

// NewWithLevel creates a logger writing to stdout at the given level name
func NewWithLevel(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a logger writing to w, mostly useful in tests
func NewWithWriter(w io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(toLogrus(ParseLevel(level)))
	return &logger{Logger: l}
}

// Discard returns a logger that drops everything
func Discard() Logger {
	return NewWithWriter(io.Discard, "error")
}

// ParseLevel converts string log level to Level type
func ParseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevel reports whether levelStr names a known level
func ValidLevel(levelStr string) bool {
	switch strings.ToLower(levelStr) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
