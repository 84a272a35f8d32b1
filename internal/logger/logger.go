// Package logger implements the levelled console logger behind utils.Logger.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// LogLevel defines log severity levels
type LogLevel int

const (
	// Log levels from least to most restrictive
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// Logger provides levelled logging to a single writer
type Logger struct {
	mu          sync.Mutex
	out         io.Writer
	useColors   bool
	level       LogLevel
	VerboseMode bool
}

// New creates a new Logger with the given settings
func New(out io.Writer, verbose bool, useColors bool) *Logger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	return &Logger{
		out:         out,
		useColors:   useColors,
		level:       level,
		VerboseMode: verbose,
	}
}

// WithLevel sets the log level and returns the logger
func (l *Logger) WithLevel(level LogLevel) *Logger {
	l.level = level
	l.VerboseMode = level <= LevelDebug
	return l
}

// SetLevel sets the log level from its name
func (l *Logger) SetLevel(levelStr string) {
	l.WithLevel(ParseLevel(levelStr))
}

// Level returns the active log level
func (l *Logger) Level() LogLevel {
	return l.level
}

// ParseLevel converts a level name to a LogLevel. Unknown names map to LevelInfo.
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Debug logs a debug message if verbose mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(LevelDebug, "DEBUG", color.CyanString, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, "INFO", color.BlueString, format, args...)
}

// Success logs a completed step at info level
func (l *Logger) Success(format string, args ...interface{}) {
	l.write(LevelInfo, "OK", color.GreenString, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(LevelWarn, "WARN", color.YellowString, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(LevelError, "ERROR", color.RedString, format, args...)
}

func (l *Logger) write(level LogLevel, prefix string, paint func(string, ...interface{}) string, format string, args ...interface{}) {
	if l.level > level {
		return
	}
	if l.useColors {
		prefix = paint(prefix)
	}

	// workers in concurrent mode log through the same writer
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s %s] %s\n", timeString(), prefix, fmt.Sprintf(format, args...))
}

// timeString returns a formatted time string for the log prefix
func timeString() string {
	return time.Now().Format("15:04:05.000")
}
