// logger.go - small leveled logger wrapping fmt.Fprintf to stderr,
// mirroring the log::trace!/debug!/warn!/error! call sites ported from
// the original sources rather than introducing a structured-logging
// dependency the teacher itself never reaches for.

package main

import (
	"fmt"
	"os"
)

type LogLevel int

const (
	LogTrace LogLevel = iota
	LogDebug
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogTrace:
		return "TRACE"
	case LogDebug:
		return "DEBUG"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "?"
	}
}

// Logger writes level-tagged lines to an output stream, defaulting to
// os.Stderr, with a minimum level below which lines are dropped.
type Logger struct {
	out      *os.File
	minLevel LogLevel
}

func NewLogger(minLevel LogLevel) *Logger {
	return &Logger{out: os.Stderr, minLevel: minLevel}
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Trace(format string, args ...any) { l.log(LogTrace, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.log(LogDebug, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LogWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LogError, format, args...) }
