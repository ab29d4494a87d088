package internal

import (
	"log"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var levelNames = map[string]LogLevel{
	"ERROR":   LogLevelError,
	"WARN":    LogLevelWarn,
	"WARNING": LogLevelWarn,
	"INFO":    LogLevelInfo,
	"DEBUG":   LogLevelDebug,
}

// ParseLogLevel maps a level name (case-insensitive) to a LogLevel.
// Unknown names return LogLevelInfo and false.
func ParseLogLevel(s string) (LogLevel, bool) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return LogLevelInfo, false
	}
	return level, true
}

// Logger provides leveled logging
type Logger struct {
	level LogLevel
	out   *log.Logger
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, out: log.Default()}
}

// NewLoggerTo creates a leveled logger writing to out.
func NewLoggerTo(level LogLevel, out *log.Logger) *Logger {
	return &Logger{level: level, out: out}
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && l.level >= level
}

// Print writes line when level is enabled.
func (l *Logger) Print(level LogLevel, line string) {
	if l.Enabled(level) {
		l.out.Print(line)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}
