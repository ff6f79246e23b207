// Package logger provides leveled logging on top of the standard log package.
// The engine logs degradations (semantic extraction failures, skipped series)
// here instead of surfacing them as errors, so the analysis pipeline stays
// observable without becoming fragile.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level represents a logging level.
type Level int

const (
	// DebugLevel logs are voluminous and usually disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs flag degraded behavior that did not stop the pipeline.
	WarnLevel
	// ErrorLevel logs are high-priority failures.
	ErrorLevel
)

var levelTags = map[Level]string{
	DebugLevel: "[DEBUG]",
	InfoLevel:  "[INFO]",
	WarnLevel:  "[WARN]",
	ErrorLevel: "[ERROR]",
}

type leveledLogger struct {
	level Level
	out   *log.Logger
}

var defaultLogger *leveledLogger

// Init initializes the default logger. Level is one of debug, info, warn,
// error (unknown values fall back to info). Format "text" adds short file
// locations to every line.
func Init(level, format string) {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.EqualFold(format, "text") {
		flags |= log.Lshortfile
	}
	defaultLogger = &leveledLogger{
		level: parseLevel(level),
		out:   log.New(os.Stderr, "", flags),
	}
}

func parseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func logf(level Level, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.level > level {
		return
	}
	msg := fmt.Sprintf(levelTags[level]+" "+format, args...)
	_ = defaultLogger.out.Output(3, msg)
}

// Debug logs a message at DebugLevel.
func Debug(format string, args ...interface{}) { logf(DebugLevel, format, args...) }

// Info logs a message at InfoLevel.
func Info(format string, args ...interface{}) { logf(InfoLevel, format, args...) }

// Warn logs a message at WarnLevel.
func Warn(format string, args ...interface{}) { logf(WarnLevel, format, args...) }

// Error logs a message at ErrorLevel.
func Error(format string, args ...interface{}) { logf(ErrorLevel, format, args...) }

// Fatal logs at ErrorLevel and exits the process.
func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf("[FATAL] "+format, args...)
	if defaultLogger != nil {
		_ = defaultLogger.out.Output(3, msg)
	} else {
		log.Print(msg)
	}
	os.Exit(1)
}
